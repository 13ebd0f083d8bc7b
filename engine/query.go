package engine

import (
	"fmt"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/pkg/validate"
)

// Mode 是查询模式。
type Mode string

const (
	ModeKnowledgeFilter     Mode = "knowledge-filter"
	ModeContentQuery        Mode = "content-query"
	ModeContentToRestaurant Mode = "content-to-restaurant"
	ModeMatrixFactorization Mode = "matrix-factorization"
	ModeHybrid              Mode = "hybrid"
	ModeCollaborative       Mode = "neighborhood-collaborative"
)

// Modes 返回全部查询模式。
func Modes() []Mode {
	return []Mode{
		ModeKnowledgeFilter, ModeContentQuery, ModeContentToRestaurant,
		ModeMatrixFactorization, ModeHybrid, ModeCollaborative,
	}
}

// Query 是一次推荐请求，不同模式使用的字段不同：
//
//	knowledge-filter           Budget, Cuisine, VegOnly, ServiceMode(delivery/takeaway/indoor)
//	content-query              Preference, Budget, ServiceMode(delivery/dinner), Location
//	content-to-restaurant      SeedName, Budget, ServiceMode(delivery/dinner)
//	matrix-factorization       UserID
//	hybrid                     UserID, SeedID
//	neighborhood-collaborative UserID
//
// Budget 是正整数预算；TopN 为 0 时使用配置中的默认值。
type Query struct {
	Mode Mode `json:"mode"`

	UserID     string           `json:"user_id"`
	SeedID     string           `json:"seed_id"`
	SeedName   string           `json:"seed_name"`
	Preference string           `json:"preference"`
	Location   string           `json:"location"`
	Cuisine    string           `json:"cuisine"`
	Budget     int              `json:"budget"`
	VegOnly    bool             `json:"veg_only"`
	Service    core.ServiceMode `json:"service_mode"`
	TopN       int              `json:"top_n"`
}

type knowledgeQuery struct {
	Budget  int    `json:"budget" validate:"gt=0"`
	Cuisine string `json:"cuisine" validate:"required"`
	Service string `json:"service_mode" validate:"required,oneof=delivery takeaway indoor"`
}

type contentQuery struct {
	Preference string `json:"preference" validate:"required"`
	Location   string `json:"location" validate:"required"`
	Budget     int    `json:"budget" validate:"gt=0"`
	Service    string `json:"service_mode" validate:"required,oneof=delivery dinner"`
}

type seedQuery struct {
	SeedName string `json:"seed_name" validate:"required"`
	Budget   int    `json:"budget" validate:"gt=0"`
	Service  string `json:"service_mode" validate:"required,oneof=delivery dinner"`
}

type userQuery struct {
	UserID string `json:"user_id" validate:"required"`
}

type hybridQuery struct {
	UserID string `json:"user_id" validate:"required"`
	SeedID string `json:"seed_id" validate:"required"`
}

// Validate 按模式校验必填字段与枚举值，任何模型计算之前执行。
func (q *Query) Validate() error {
	if q.TopN < 0 {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			fmt.Sprintf("top_n must be >= 0, got %d", q.TopN))
	}
	var view any
	switch q.Mode {
	case ModeKnowledgeFilter:
		view = &knowledgeQuery{Budget: q.Budget, Cuisine: q.Cuisine, Service: string(q.Service)}
	case ModeContentQuery:
		view = &contentQuery{Preference: q.Preference, Location: q.Location, Budget: q.Budget, Service: string(q.Service)}
	case ModeContentToRestaurant:
		view = &seedQuery{SeedName: q.SeedName, Budget: q.Budget, Service: string(q.Service)}
	case ModeMatrixFactorization, ModeCollaborative:
		view = &userQuery{UserID: q.UserID}
	case ModeHybrid:
		view = &hybridQuery{UserID: q.UserID, SeedID: q.SeedID}
	default:
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			fmt.Sprintf("unknown mode %q", q.Mode))
	}
	return validate.Struct(core.ModuleEngine, view)
}

// params 把查询转换为 Pipeline 的请求参数，只写入当前模式使用的字段。
func (q *Query) params() map[string]any {
	p := make(map[string]any, 6)
	switch q.Mode {
	case ModeKnowledgeFilter:
		p[core.ParamBudget] = float64(q.Budget)
		p[core.ParamCuisine] = q.Cuisine
		p[core.ParamVegOnly] = q.VegOnly
		p[core.ParamServiceMode] = q.Service
	case ModeContentQuery:
		p[core.ParamBudget] = float64(q.Budget)
		p[core.ParamServiceMode] = q.Service
		p[core.ParamPreference] = q.Preference
		p[core.ParamLocation] = q.Location
	case ModeContentToRestaurant:
		p[core.ParamBudget] = float64(q.Budget)
		p[core.ParamServiceMode] = q.Service
	case ModeHybrid:
		p[core.ParamSeedID] = q.SeedID
	}
	p[core.ParamTopN] = q.TopN
	return p
}
