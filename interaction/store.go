// Package interaction 保存用户-餐厅交互记录，并派生稀疏的用户-餐厅评分矩阵。
package interaction

import (
	"fmt"
	"math"
	"strings"

	"github.com/rushteam/dinekit/catalog"
	"github.com/rushteam/dinekit/core"
)

// Store 是只读的交互表（Interaction Store）。
type Store struct {
	interactions []core.Interaction
	byUser       map[string][]int
	users        []string
}

// NewStore 校验交互记录：用户 ID 非空、餐厅必须存在于目录、评分在 [1,5]、花费非负。
func NewStore(interactions []core.Interaction, cat *catalog.Catalog) (*Store, error) {
	s := &Store{
		interactions: make([]core.Interaction, 0, len(interactions)),
		byUser:       make(map[string][]int),
	}
	for i, in := range interactions {
		in.UserID = strings.TrimSpace(in.UserID)
		in.RestaurantID = strings.TrimSpace(in.RestaurantID)
		if in.UserID == "" {
			return nil, invalid(fmt.Sprintf("interaction: row %d: empty user id", i+1))
		}
		if _, ok := cat.Index(in.RestaurantID); !ok {
			return nil, invalid(fmt.Sprintf("interaction: row %d: unknown restaurant %q", i+1, in.RestaurantID))
		}
		if !(in.Rating >= core.MinRating && in.Rating <= core.MaxRating) {
			return nil, invalid(fmt.Sprintf("interaction: row %d: rating %v out of range [%v, %v]",
				i+1, in.Rating, core.MinRating, core.MaxRating))
		}
		if !(in.Cost >= 0) || math.IsInf(in.Cost, 1) {
			return nil, invalid(fmt.Sprintf("interaction: row %d: invalid cost %v", i+1, in.Cost))
		}
		if _, ok := s.byUser[in.UserID]; !ok {
			s.users = append(s.users, in.UserID)
		}
		s.byUser[in.UserID] = append(s.byUser[in.UserID], len(s.interactions))
		s.interactions = append(s.interactions, in)
	}
	return s, nil
}

// ByUser 返回用户的全部交互（加载顺序），未知用户返回空切片。
func (s *Store) ByUser(userID string) []core.Interaction {
	idx := s.byUser[userID]
	out := make([]core.Interaction, 0, len(idx))
	for _, i := range idx {
		out = append(out, s.interactions[i])
	}
	return out
}

// HasUser 判断用户是否有交互记录。
func (s *Store) HasUser(userID string) bool {
	_, ok := s.byUser[userID]
	return ok
}

// Users 按首次出现顺序返回用户 ID。
func (s *Store) Users() []string {
	return append([]string(nil), s.users...)
}

// All 返回全部交互记录的副本。
func (s *Store) All() []core.Interaction {
	return append([]core.Interaction(nil), s.interactions...)
}

// Len 返回交互记录条数。
func (s *Store) Len() int {
	return len(s.interactions)
}

func invalid(msg string) error {
	return core.NewDomainError(core.ModuleInteraction, core.ErrorCodeInvalidInput, msg)
}
