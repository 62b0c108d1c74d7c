package mcts

import (
	"errors"
	"fmt"
	"math"
	rand "math/rand/v2"
	"slices"
)

var (
	// ErrNoActionAvailable is returned when a node that must pick a child
	// has none, e.g. a recommendation from a terminal root.
	ErrNoActionAvailable = errors.New("no action available")

	// ErrUnvisitedNode guards UCB1 against scoring before a first visit.
	ErrUnvisitedNode = errors.New("node has no visits")

	// ErrRolloutLimit is returned when a playout exceeds MaxRolloutDepth.
	ErrRolloutLimit = errors.New("rollout exceeded max depth")
)

const noParent = -1

// node is one arena slot. Children and parent are arena indices; the
// parent link is only followed during backpropagation.
type node[S any, A comparable] struct {
	state    S
	parent   int
	action   A
	children []int
	untried  []A
	visits   int
	wins     float64
	depth    int
}

// tree owns every node created during one search. It is not safe for
// concurrent use; parallel searches build one tree each.
type tree[S State[S, A], A comparable] struct {
	nodes []node[S, A]
	rng   *rand.Rand

	iterations   int
	maxDepth     int
	rolloutSteps int64
}

func newTree[S State[S, A], A comparable](root S, rng *rand.Rand) *tree[S, A] {
	t := &tree[S, A]{rng: rng}
	var none A
	t.add(root, noParent, none)
	return t
}

func (t *tree[S, A]) add(state S, parent int, action A) int {
	depth := 0
	if parent != noParent {
		depth = t.nodes[parent].depth + 1
	}
	t.nodes = append(t.nodes, node[S, A]{
		state:   state,
		parent:  parent,
		action:  action,
		untried: slices.Clone(state.LegalActions()),
		depth:   depth,
	})
	t.maxDepth = max(t.maxDepth, depth)
	return len(t.nodes) - 1
}

// iterate runs one selection, expansion, rollout and backpropagation pass.
func (t *tree[S, A]) iterate(exploration float64, maxRollout int) error {
	idx, err := t.selectNode(exploration)
	if err != nil {
		return fmt.Errorf("select: %w", err)
	}
	if !t.nodes[idx].state.IsTerminal() {
		if idx, err = t.expand(idx); err != nil {
			return fmt.Errorf("expand: %w", err)
		}
	}
	reward, err := t.rollout(idx, maxRollout)
	if err != nil {
		return fmt.Errorf("rollout: %w", err)
	}
	t.backpropagate(idx, reward)
	t.iterations++
	return nil
}

// selectNode descends from the root by UCB1 until it reaches a terminal
// node or one with actions left to expand.
func (t *tree[S, A]) selectNode(exploration float64) (int, error) {
	idx := 0
	for !t.nodes[idx].state.IsTerminal() {
		if len(t.nodes[idx].untried) > 0 {
			return idx, nil
		}
		next, err := t.bestChild(idx, exploration)
		if err != nil {
			return 0, err
		}
		idx = next
	}
	return idx, nil
}

// expand adds a child for one untried action picked uniformly at random.
func (t *tree[S, A]) expand(idx int) (int, error) {
	untried := t.nodes[idx].untried
	i := t.rng.IntN(len(untried))
	action := untried[i]
	t.nodes[idx].untried = slices.Delete(untried, i, i+1)

	next, err := t.nodes[idx].state.Apply(action)
	if err != nil {
		return 0, fmt.Errorf("apply %v: %w", action, err)
	}
	child := t.add(next, idx, action)
	t.nodes[idx].children = append(t.nodes[idx].children, child)
	return child, nil
}

// rollout plays uniformly random actions from the node's state until the
// first terminal state and returns its result.
func (t *tree[S, A]) rollout(idx, maxSteps int) (float64, error) {
	state := t.nodes[idx].state
	for steps := 0; !state.IsTerminal(); steps++ {
		if steps >= maxSteps {
			return 0, fmt.Errorf("%w (%d)", ErrRolloutLimit, maxSteps)
		}
		actions := state.LegalActions()
		if len(actions) == 0 {
			return 0, fmt.Errorf("%w: non-terminal state has no legal actions", ErrNoActionAvailable)
		}
		next, err := state.Apply(actions[t.rng.IntN(len(actions))])
		if err != nil {
			return 0, err
		}
		state = next
		t.rolloutSteps++
	}
	return state.Result()
}

// backpropagate adds a visit and the same reward to every node from idx
// up to the root.
func (t *tree[S, A]) backpropagate(idx int, reward float64) {
	for ; idx != noParent; idx = t.nodes[idx].parent {
		t.nodes[idx].visits++
		t.nodes[idx].wins += reward
	}
}

// bestChild returns the child with the highest UCB1 score. Ties go to the
// child expanded first.
func (t *tree[S, A]) bestChild(idx int, exploration float64) (int, error) {
	parent := &t.nodes[idx]
	if len(parent.children) == 0 {
		return 0, ErrNoActionAvailable
	}
	if parent.visits == 0 {
		return 0, ErrUnvisitedNode
	}
	logN := math.Log(float64(parent.visits))

	best, bestScore := -1, 0.0
	for _, c := range parent.children {
		child := &t.nodes[c]
		if child.visits == 0 {
			return 0, ErrUnvisitedNode
		}
		score := ucb1(child.wins, child.visits, logN, exploration)
		if best < 0 || score > bestScore {
			best, bestScore = c, score
		}
	}
	return best, nil
}

// ucb1 = mean reward + c * sqrt(ln(N) / n)
func ucb1(wins float64, visits int, logParentVisits, exploration float64) float64 {
	n := float64(visits)
	return wins/n + exploration*math.Sqrt(logParentVisits/n)
}

func (t *tree[S, A]) rootChildren() []ChildStats[A] {
	root := t.nodes[0]
	out := make([]ChildStats[A], 0, len(root.children))
	for _, c := range root.children {
		n := t.nodes[c]
		out = append(out, newChildStats(n.action, n.visits, n.wins))
	}
	return out
}
