package recall

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/juju/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/rushteam/dinekit/core"
	"github.com/rushteam/dinekit/interaction"
)

// 矩阵分解训练方法
const (
	MethodSVD = "svd" // 零填充稠密矩阵上的截断 SVD（确定性）
	MethodALS = "als" // 只在观测值上拟合的交替最小二乘
)

// MFConfig 是矩阵分解的训练参数。
type MFConfig struct {
	Method string  `yaml:"method" validate:"omitempty,oneof=svd als"`
	Rank   int     `yaml:"rank" validate:"gte=1"`
	Seed   int64   `yaml:"seed"`
	Epochs int     `yaml:"epochs" validate:"gte=0"` // 仅 ALS
	Reg    float64 `yaml:"reg" validate:"gte=0"`    // 仅 ALS
}

// MFModel 是基于矩阵分解（Matrix Factorization）的评分模型。
//
// 核心思想：将用户-餐厅评分矩阵分解为用户隐向量和餐厅隐向量，
// 预测分数 = 用户隐向量 · 餐厅隐向量。
//
// 训练方法：
//   - svd：未评分格子按 0 填充后做截断 SVD，用户因子 = UₖΣₖ，餐厅因子 = Vₖ。
//     0 会被当成真实的低分参与分解，这是已知的偏差。
//   - als：只在观测到的评分上做带 L2 正则的交替最小二乘，固定随机种子。
//
// 预测矩阵在训练时一次算好并缓存；训练后只读，不支持冷启动用户/餐厅。
type MFModel struct {
	matrix    *interaction.RatingMatrix
	method    string
	rank      int
	users     *mat.Dense // users × k
	items     *mat.Dense // items × k
	predicted *mat.Dense // users × items
}

// TrainMF 训练矩阵分解模型。k 会被限制在 [1, min(users, items) - 1]。
func TrainMF(m *interaction.RatingMatrix, cfg MFConfig) (*MFModel, error) {
	nu, ni := m.NumUsers(), m.NumItems()
	if nu == 0 || ni == 0 {
		return nil, insufficient("mf: empty rating matrix")
	}
	k := min(cfg.Rank, min(nu, ni)-1)
	if k < 1 {
		k = 1
	}

	model := &MFModel{matrix: m, method: cfg.Method, rank: k}
	if model.method == "" {
		model.method = MethodSVD
	}
	var err error
	switch model.method {
	case MethodSVD:
		err = model.trainSVD()
	case MethodALS:
		model.trainALS(cfg)
	default:
		err = core.NewDomainError(core.ModuleModel, core.ErrorCodeNotSupported,
			fmt.Sprintf("mf: unknown method %q", cfg.Method))
	}
	if err != nil {
		return nil, errors.Trace(err)
	}

	model.predicted = mat.NewDense(nu, ni, nil)
	model.predicted.Mul(model.users, model.items.T())
	return model, nil
}

func (r *MFModel) trainSVD() error {
	var svd mat.SVD
	if ok := svd.Factorize(r.matrix.Dense(), mat.SVDThin); !ok {
		return core.NewDomainError(core.ModuleModel, core.ErrorCodeInternalError, "mf: svd factorization failed")
	}
	nu, ni, k := r.matrix.NumUsers(), r.matrix.NumItems(), r.rank
	values := svd.Values(nil)

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)

	r.users = mat.NewDense(nu, k, nil)
	r.users.Mul(u.Slice(0, nu, 0, k), mat.NewDiagDense(k, values[:k]))
	r.items = mat.DenseCopyOf(v.Slice(0, ni, 0, k))
	return nil
}

func (r *MFModel) trainALS(cfg MFConfig) {
	nu, ni, k := r.matrix.NumUsers(), r.matrix.NumItems(), r.rank
	rng := rand.New(rand.NewSource(cfg.Seed))
	r.users = randomFactors(rng, nu, k)
	r.items = randomFactors(rng, ni, k)

	epochs := cfg.Epochs
	if epochs <= 0 {
		epochs = 15
	}
	for e := 0; e < epochs; e++ {
		for u := 0; u < nu; u++ {
			r.users.SetRow(u, solveFactor(r.items, r.matrix.Row(u), cfg.Reg, k))
		}
		for i := 0; i < ni; i++ {
			r.items.SetRow(i, solveFactor(r.users, r.matrix.Col(i), cfg.Reg, k))
		}
	}
}

func randomFactors(rng *rand.Rand, n, k int) *mat.Dense {
	data := make([]float64, n*k)
	for i := range data {
		data[i] = rng.NormFloat64() * 0.1
	}
	return mat.NewDense(n, k, data)
}

// solveFactor 求解 (FᵀF + λI) x = Fᵀr，F 为观测值对应的对侧因子行。
func solveFactor(fixed *mat.Dense, entries []interaction.Entry, reg float64, k int) []float64 {
	a := mat.NewSymDense(k, nil)
	for d := 0; d < k; d++ {
		a.SetSym(d, d, reg)
	}
	b := mat.NewVecDense(k, nil)
	for _, e := range entries {
		row := fixed.RowView(e.Index)
		a.SymRankOne(a, 1, row)
		b.AddScaledVec(b, e.Value, row)
	}
	var x mat.VecDense
	if err := x.SolveVec(a, b); err != nil {
		// 奇异时退化为零向量
		return make([]float64, k)
	}
	return x.RawVector().Data
}

func (r *MFModel) Name() string { return "recall.mf" }

// Method 返回训练方法。
func (r *MFModel) Method() string { return r.method }

// Rank 返回实际使用的隐因子维度 k。
func (r *MFModel) Rank() int { return r.rank }

// Predict 返回缓存的预测评分，用户或餐厅不在训练空间内时返回 NOT_FOUND。
func (r *MFModel) Predict(userID, itemID string) (float64, error) {
	u, err := r.user(userID)
	if err != nil {
		return 0, err
	}
	i, err := r.item(itemID)
	if err != nil {
		return 0, err
	}
	return r.predicted.At(u, i), nil
}

// UserFactor 返回用户隐向量。
func (r *MFModel) UserFactor(userID string) ([]float64, error) {
	u, err := r.user(userID)
	if err != nil {
		return nil, err
	}
	return mat.Row(nil, u, r.users), nil
}

// ItemFactor 返回餐厅隐向量。
func (r *MFModel) ItemFactor(itemID string) ([]float64, error) {
	i, err := r.item(itemID)
	if err != nil {
		return nil, err
	}
	return mat.Row(nil, i, r.items), nil
}

// TopN 返回用户预测分最高的 n 家餐厅（n <= 0 返回全部），同分按餐厅 ID。
func (r *MFModel) TopN(userID string, excludeRated bool, n int) ([]core.Scored, error) {
	u, err := r.user(userID)
	if err != nil {
		return nil, err
	}
	out := make([]core.Scored, 0, r.matrix.NumItems())
	for i := 0; i < r.matrix.NumItems(); i++ {
		if _, rated := r.matrix.Get(u, i); rated && excludeRated {
			continue
		}
		out = append(out, core.Scored{ID: r.matrix.Items.Name(i), Score: r.predicted.At(u, i)})
	}
	return topScored(out, n), nil
}

// Recall 实现 Source。
func (r *MFModel) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	return (&UserRecall{Model: r}).Recall(ctx, rctx)
}

func (r *MFModel) user(id string) (int, error) {
	u, ok := r.matrix.Users.Lookup(id)
	if !ok {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFound,
			fmt.Sprintf("mf: user %q not in trained matrix", id))
	}
	return u, nil
}

func (r *MFModel) item(id string) (int, error) {
	i, ok := r.matrix.Items.Lookup(id)
	if !ok {
		return 0, core.NewDomainError(core.ModuleModel, core.ErrorCodeNotFound,
			fmt.Sprintf("mf: restaurant %q not in trained matrix", id))
	}
	return i, nil
}
