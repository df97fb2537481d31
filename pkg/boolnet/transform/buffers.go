package transform

import (
	"container/heap"

	"github.com/railsmith/railsmith/pkg/boolnet"
)

// InsertBuffsByScoap inserts a buffer behind each of the up-to-places
// gates with the worst SCOAP product CC0·CC1·CO, splitting their fan-out
// nets. The new buffer takes over every follower of the gate; the gate's
// only follower becomes the buffer. Buffers and gates that already feed
// a lone buffer are skipped so chains of buffers never build up.
//
// Run [ComputeSumScoap] first; the ranking reads the stored figures and
// does not recompute them.
func InsertBuffsByScoap(n *boolnet.Net, places int) {
	h := &scoapHeap{net: n}
	for _, id := range n.InnerIDs() {
		g := n.MustGate(id)
		if g.Function() == boolnet.FnBuffer {
			continue
		}
		if g.FanOut() == 1 {
			f, ok := n.Gate(g.Follower(0))
			if !ok || f.Function() == boolnet.FnBuffer {
				continue
			}
		}
		h.ids = append(h.ids, id)
	}
	heap.Init(h)

	for i := 0; i < places && h.Len() > 0; i++ {
		g := n.MustGate(heap.Pop(h).(boolnet.GateID))

		buff := n.NewGate(g.Name()+"_SCOAPBUFF", boolnet.FnBuffer, boolnet.PlaceInner)
		for j := 0; j < g.FanOut(); j++ {
			f := g.Follower(j)
			n.AddFollow(buff.ID(), f)
			n.SwapDriver(f, g.ID(), buff.ID())
		}
		for g.FanOut() > 0 {
			n.RemFollow(g.ID(), g.Follower(0))
		}
		n.NewInput(buff.ID(), g.ID(), false)
		n.RegisterBuffer(buff)
	}
}

// scoapHeap is a max-heap over gate IDs ordered by the SCOAP product.
// Scores are compared as floats so the triple product cannot wrap.
type scoapHeap struct {
	net *boolnet.Net
	ids []boolnet.GateID
}

func (h *scoapHeap) score(id boolnet.GateID) float64 {
	s := h.net.MustGate(id).Scoap()
	return float64(s.CC0) * float64(s.CC1) * float64(s.CO)
}

func (h *scoapHeap) Len() int           { return len(h.ids) }
func (h *scoapHeap) Less(i, j int) bool { return h.score(h.ids[i]) > h.score(h.ids[j]) }
func (h *scoapHeap) Swap(i, j int)      { h.ids[i], h.ids[j] = h.ids[j], h.ids[i] }
func (h *scoapHeap) Push(x any)         { h.ids = append(h.ids, x.(boolnet.GateID)) }
func (h *scoapHeap) Pop() any {
	last := h.ids[len(h.ids)-1]
	h.ids = h.ids[:len(h.ids)-1]
	return last
}
