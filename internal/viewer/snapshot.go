package viewer

import (
	"github.com/vitrinelabs/vitrine/internal/assets"
	"github.com/vitrinelabs/vitrine/internal/catalog"
	"github.com/vitrinelabs/vitrine/internal/protocol"
)

// snapshot renders the loop's current state into its wire form.
func (a *App) snapshot() protocol.State {
	st := protocol.State{
		Seq:   a.seq,
		Scale: a.scale.Factor(),
		Session: protocol.Session{
			Presenting: a.session.Presenting(),
			HitTest:    a.session.HitTestAvailable(),
		},
		Placement: protocol.Placement{Phase: a.placement.Phase().String()},
	}

	st.Catalog.Error = catalog.ErrorText(a.catalog.Err())
	for _, p := range a.catalog.Items() {
		st.Catalog.Items = append(st.Catalog.Items, wireProduct(p))
	}
	if sel, ok := a.catalog.Selected(); ok {
		st.Catalog.Selected = sel.ID
	}

	if pose, ok := a.placement.Candidate(); ok {
		wire := protocol.PoseFrom(pose)
		st.Placement.Reticle = &wire
	}
	if pose, ok := a.placement.Anchor(); ok {
		wire := protocol.PoseFrom(pose)
		st.Placement.Anchor = &wire
	}

	st.Viewport = wireSlot(&a.viewport)
	st.Gallery = make([]protocol.Slot, len(a.gallery))
	for i := range a.gallery {
		st.Gallery[i] = wireSlot(&a.gallery[i])
	}
	return st
}

func wireProduct(p catalog.Product) protocol.Product {
	return protocol.Product{ID: p.ID, Name: p.Name, ModelURI: p.ModelURI}
}

func wireSlot(p *pane) protocol.Slot {
	s := protocol.Slot{Status: p.Status.String(), Error: p.Err}
	if p.Product.ID != "" {
		product := wireProduct(p.Product)
		s.Product = &product
	}
	if p.Model != nil {
		s.Model = &protocol.ModelSummary{
			Name:       p.Model.Name,
			Clips:      p.Model.Clips,
			Vertices:   p.Model.Vertices,
			Primitives: p.Model.Primitives,
		}
	}
	if p.Status == assets.StatusLoaded {
		s.Normalize = &protocol.Normalize{
			Translation: [3]float32{p.Norm.Translation.X, p.Norm.Translation.Y, p.Norm.Translation.Z},
			Scale:       p.Norm.Scale,
		}
	}
	return s
}
