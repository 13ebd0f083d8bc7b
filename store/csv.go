package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"

	"github.com/rushteam/dinekit/core"
)

// 未评分标记（原始数据中的 "-"）
const unratedMark = "-"

// header 按列名（大小写不敏感、忽略首尾空白）定位列。
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := h[name]; !ok {
			h[name] = i
		}
	}
	return h
}

// column 返回第一个存在的候选列下标。
func (h header) column(names ...string) (int, bool) {
	for _, n := range names {
		if i, ok := h[strings.ToLower(n)]; ok {
			return i, true
		}
	}
	return 0, false
}

func cell(row []string, i int, ok bool) string {
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// LoadRestaurantsCSV 解析餐厅表。必需列：rest_id（或 ID / id）与 Name，其余列缺失时取零值。
// 任意一行解析失败都会返回带行号的 INVALID_INPUT 错误。
func LoadRestaurantsCSV(r io.Reader) ([]core.Restaurant, error) {
	rows, h, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	idCol, ok := h.column("rest_id", "id")
	if !ok {
		return nil, invalidf("restaurants: missing id column (rest_id/ID)")
	}
	nameCol, ok := h.column("name")
	if !ok {
		return nil, invalidf("restaurants: missing Name column")
	}
	col := func(names ...string) func([]string) string {
		i, ok := h.column(names...)
		return func(row []string) string { return cell(row, i, ok) }
	}
	var (
		cuisines = col("cuisines")
		knownFor = col("knownfor")
		dishes   = col("populardishes")
		area     = col("area")
		cost     = col("averagecost")
		veg      = col("isvegonly")
		indoor   = col("isindoorseating")
		takeaway = col("istakeaway")
		delivery = col("ishomedelivery")
		dRating  = col("delivery ratings")
		nRating  = col("dinner ratings")
	)

	out := make([]core.Restaurant, 0, len(rows))
	for n, row := range rows {
		line := n + 2 // 1-based，含表头
		rest := core.Restaurant{
			ID:            cell(row, idCol, true),
			Name:          cell(row, nameCol, true),
			Cuisines:      splitCuisines(cuisines(row)),
			KnownFor:      knownFor(row),
			PopularDishes: dishes(row),
			Area:          area(row),
		}
		if rest.AverageCost, err = parseNumber(cost(row)); err != nil {
			return nil, invalidf("restaurants: line %d: AverageCost: %v", line, err)
		}
		flags := []struct {
			dst *bool
			raw string
			col string
		}{
			{&rest.VegOnly, veg(row), "isVegOnly"},
			{&rest.IndoorSeating, indoor(row), "isIndoorSeating"},
			{&rest.Takeaway, takeaway(row), "isTakeaway"},
			{&rest.HomeDelivery, delivery(row), "IsHomeDelivery"},
		}
		for _, f := range flags {
			if *f.dst, err = parseFlag(f.raw); err != nil {
				return nil, invalidf("restaurants: line %d: %s: %v", line, f.col, err)
			}
		}
		if rest.DeliveryRating, err = parseRating(dRating(row)); err != nil {
			return nil, invalidf("restaurants: line %d: Delivery Ratings: %v", line, err)
		}
		if rest.DineInRating, err = parseRating(nRating(row)); err != nil {
			return nil, invalidf("restaurants: line %d: Dinner Ratings: %v", line, err)
		}
		out = append(out, rest)
	}
	return out, nil
}

// LoadInteractionsCSV 解析交互表：user_id, rest_id, rating, cost（cost 可缺省）。
func LoadInteractionsCSV(r io.Reader) ([]core.Interaction, error) {
	rows, h, err := readCSV(r)
	if err != nil {
		return nil, err
	}
	userCol, okU := h.column("user_id")
	restCol, okR := h.column("rest_id")
	ratingCol, okRt := h.column("rating")
	if !okU || !okR || !okRt {
		return nil, invalidf("interactions: header must contain user_id, rest_id and rating")
	}
	costCol, okC := h.column("cost")

	out := make([]core.Interaction, 0, len(rows))
	for n, row := range rows {
		line := n + 2
		in := core.Interaction{
			UserID:       cell(row, userCol, true),
			RestaurantID: cell(row, restCol, true),
		}
		if in.Rating, err = parseFinite(cell(row, ratingCol, true)); err != nil {
			return nil, invalidf("interactions: line %d: rating: %v", line, err)
		}
		if in.Cost, err = parseNumber(cell(row, costCol, okC)); err != nil {
			return nil, invalidf("interactions: line %d: cost: %v", line, err)
		}
		out = append(out, in)
	}
	return out, nil
}

func readCSV(r io.Reader) ([][]string, header, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, errors.Annotate(err, "read csv")
	}
	if len(records) == 0 {
		return nil, nil, invalidf("csv: empty input, header expected")
	}
	return records[1:], newHeader(records[0]), nil
}

func splitCuisines(s string) []string {
	parts := lo.Map(strings.Split(s, ","), func(p string, _ int) string { return strings.TrimSpace(p) })
	return lo.Compact(parts)
}

// parseNumber 解析非负数，空值视为 0。
func parseNumber(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := parseFinite(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0, err
	}
	if !(v >= 0) {
		return 0, fmt.Errorf("negative value %v", v)
	}
	return v, nil
}

// parseFlag 解析布尔标记（1/0/true/false），空值视为 false。
func parseFlag(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseRating(s string) (core.Rating, error) {
	if s == "" || s == unratedMark {
		return core.Rating{}, nil
	}
	v, err := parseFinite(s)
	if err != nil {
		return core.Rating{}, err
	}
	return core.Rated(v), nil
}

// parseFinite 解析浮点数，拒绝 NaN 与 ±Inf。
func parseFinite(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", s)
	}
	return v, nil
}

func invalidf(format string, args ...any) error {
	return core.NewDomainError(core.ModuleStore, core.ErrorCodeInvalidInput, fmt.Sprintf(format, args...))
}
