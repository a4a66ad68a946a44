package mincov

import (
	"sort"

	"github.com/crillab/gophersat/solver"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Solve returns a set of columns covering every row of m, sorted by index.
// If weights is non nil, weights[col] is the cost of column col, else each
// column costs 1. If heuristic is false, the returned cover has minimum cost;
// else it is computed greedily. level is a verbosity level: 0 is silent.
func Solve(m *Matrix, weights []int, heuristic bool, level int, log logrus.FieldLogger) ([]int, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	for i, row := range m.rows {
		if len(row) == 0 {
			return nil, errors.Errorf("row %d cannot be covered", i)
		}
	}
	if weights != nil && len(weights) < m.nbCol {
		return nil, errors.Errorf("%d weights for %d columns", len(weights), m.nbCol)
	}
	if level > 0 {
		log.WithFields(logrus.Fields{"rows": len(m.rows), "cols": m.nbCol, "heuristic": heuristic}).Info("solving covering problem")
	}
	var (
		cols []int
		err  error
	)
	if heuristic {
		cols = greedy(m, weights)
	} else {
		cols, err = exact(m, weights)
	}
	if err != nil {
		return nil, err
	}
	sort.Ints(cols)
	if level > 0 {
		log.WithFields(logrus.Fields{"cols": cols, "cost": cost(cols, weights)}).Info("covering problem solved")
	}
	return cols, nil
}

func weight(weights []int, col int) int {
	if weights == nil {
		return 1
	}
	return weights[col]
}

func cost(cols, weights []int) int {
	res := 0
	for _, c := range cols {
		res += weight(weights, c)
	}
	return res
}

// exact solves the problem as a pseudo-boolean optimization problem:
// one boolean var per column, one clause per row, and the sum of the
// weights of the true vars as the cost function.
func exact(m *Matrix, weights []int) ([]int, error) {
	if len(m.rows) == 0 {
		return nil, nil
	}
	colVars := make(map[int]int) // for each column, its integer var
	var varCols []int            // for each var - 1, the associated column
	constrs := make([]solver.PBConstr, len(m.rows))
	for i, row := range m.rows {
		lits := make([]int, len(row))
		for j, col := range row {
			if _, ok := colVars[col]; !ok {
				varCols = append(varCols, col)
				colVars[col] = len(varCols)
			}
			lits[j] = colVars[col]
		}
		constrs[i] = solver.PropClause(lits...)
	}
	var (
		costLits    []solver.Lit
		costWeights []int
	)
	for v, col := range varCols {
		if w := weight(weights, col); w > 0 {
			costLits = append(costLits, solver.IntToLit(int32(v+1)))
			costWeights = append(costWeights, w)
		}
	}
	pb := solver.ParsePBConstrs(constrs)
	if pb.Status == solver.Unsat {
		return nil, errors.New("covering problem is not satisfiable")
	}
	if len(costLits) > 0 {
		pb.SetCostFunc(costLits, costWeights)
	}
	s := solver.New(pb)
	if c := s.Minimize(); c == -1 {
		return nil, errors.New("covering problem is not satisfiable")
	}
	model := s.Model()
	var res []int
	for v, col := range varCols {
		if v < len(model) && model[v] {
			res = append(res, col)
		}
	}
	return removeRedundant(m, res, weights), nil
}

// greedy repeatedly selects the column covering the most uncovered rows per
// unit of weight, then removes the columns that became useless.
func greedy(m *Matrix, weights []int) []int {
	covered := make([]bool, len(m.rows))
	nbCovered := 0
	var res []int
	for nbCovered < len(m.rows) {
		gain := make(map[int]int)
		for i, row := range m.rows {
			if covered[i] {
				continue
			}
			for _, col := range row {
				gain[col]++
			}
		}
		best := -1
		var bestScore float64
		for col, g := range gain {
			w := weight(weights, col)
			score := float64(g)
			if w > 0 {
				score /= float64(w)
			} else {
				score *= float64(len(m.rows) + 1)
			}
			if best == -1 || score > bestScore || (score == bestScore && col < best) {
				best, bestScore = col, score
			}
		}
		res = append(res, best)
		for i, row := range m.rows {
			if covered[i] {
				continue
			}
			for _, col := range row {
				if col == best {
					covered[i] = true
					nbCovered++
					break
				}
			}
		}
	}
	return removeRedundant(m, res, weights)
}

// removeRedundant removes, most expensive first, the columns of cols that are
// not needed to cover m.
func removeRedundant(m *Matrix, cols, weights []int) []int {
	res := append([]int(nil), cols...)
	sort.SliceStable(res, func(i, j int) bool { return weight(weights, res[i]) > weight(weights, res[j]) })
	for i := 0; i < len(res); {
		without := make([]int, 0, len(res)-1)
		without = append(without, res[:i]...)
		without = append(without, res[i+1:]...)
		if m.Covered(without) {
			res = without
		} else {
			i++
		}
	}
	return res
}
