// Package viewer runs the event loop that owns every piece of placement,
// session, catalog, and slot state and publishes snapshots to clients.
package viewer

import (
	"context"

	"go.uber.org/zap"

	"github.com/vitrinelabs/vitrine/internal/assets"
	"github.com/vitrinelabs/vitrine/internal/catalog"
	"github.com/vitrinelabs/vitrine/internal/hittest"
	"github.com/vitrinelabs/vitrine/internal/logger"
	"github.com/vitrinelabs/vitrine/internal/model"
	"github.com/vitrinelabs/vitrine/internal/placement"
	"github.com/vitrinelabs/vitrine/internal/protocol"
	"github.com/vitrinelabs/vitrine/internal/session"
)

// slotViewport tags viewport load requests; gallery requests use the product
// index.
const slotViewport = -1

// Publisher receives each new snapshot. The hub implements it.
type Publisher interface {
	Publish(state protocol.State)
}

// Options tune presentation behavior.
type Options struct {
	TargetSize float32
	MinScale   float32
	MaxScale   float32
}

// pane is one rendered slot plus the corrective transform for its model.
type pane struct {
	assets.Slot
	Norm model.Transform
}

// App applies client events and load results strictly in arrival order on a
// single goroutine. Nothing outside that goroutine touches its state, which
// is what makes a frame's hit pose and the placement confirmed from it
// atomic: both are applied before any later frame is looked at.
type App struct {
	catalog   *catalog.Catalog
	manager   *assets.Manager
	publisher Publisher

	placement *placement.Controller
	scale     *placement.Scale
	tracker   *hittest.Tracker
	session   *session.Lifecycle

	handlers map[string]func(protocol.Event)
	inbox    chan []byte
	ctx      context.Context

	targetSize float32
	generation uint64
	viewport   pane
	gallery    []pane
	seq        uint64
	dirty      bool
}

// New assembles an app around an already fetched catalog.
func New(cat *catalog.Catalog, mgr *assets.Manager, pub Publisher, opts Options) *App {
	if opts.TargetSize <= 0 {
		opts.TargetSize = 1
	}
	pc := placement.NewController()
	sc := placement.NewScale(opts.MinScale, opts.MaxScale)
	tr := hittest.NewTracker()

	a := &App{
		catalog:    cat,
		manager:    mgr,
		publisher:  pub,
		placement:  pc,
		scale:      sc,
		tracker:    tr,
		session:    session.NewLifecycle(pc, sc, tr),
		inbox:      make(chan []byte, 64),
		targetSize: opts.TargetSize,
	}
	a.handlers = map[string]func(protocol.Event){
		protocol.EventSelect:  a.onSelect,
		protocol.EventSession: a.onSession,
		protocol.EventFrame:   a.onFrame,
		protocol.EventPlace:   a.onPlace,
		protocol.EventScale:   a.onScale,
	}
	return a
}

// Inbox accepts raw client messages. The hub's read loops feed it.
func (a *App) Inbox() chan<- []byte {
	return a.inbox
}

// SetPublisher attaches the snapshot sink. The hub is built around the app's
// inbox, so wiring it happens after New and before Run.
func (a *App) SetPublisher(pub Publisher) {
	a.publisher = pub
}

// Run processes events and load results until ctx ends. Each input that
// changed state is followed by one published snapshot.
func (a *App) Run(ctx context.Context) {
	a.start(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case raw := <-a.inbox:
			a.handleRaw(raw)
		case res := <-a.manager.Results():
			a.commit(res)
		}
		if a.dirty {
			a.publish()
		}
	}
}

// start requests gallery loads for every product and auto-selects the first
// one. A catalog in an error state publishes the blocking error snapshot and
// nothing else.
func (a *App) start(ctx context.Context) {
	a.ctx = ctx
	if err := a.catalog.Err(); err != nil {
		logger.Warn("catalog unavailable", zap.String("reason", catalog.ErrorText(err)))
		a.publish()
		return
	}

	items := a.catalog.Items()
	a.gallery = make([]pane, len(items))
	for i, p := range items {
		a.gallery[i].Begin(p)
		a.manager.Load(ctx, assets.Request{Slot: i, Product: p})
	}
	if len(items) > 0 {
		if p, err := a.catalog.Select(items[0].ID); err == nil {
			a.applySelection(p)
		}
	}
	a.publish()
}

func (a *App) handleRaw(raw []byte) {
	ev, err := protocol.DecodeEvent(raw)
	if err != nil {
		logger.Debug("dropping malformed event", zap.Error(err))
		return
	}
	handler, ok := a.handlers[ev.Type]
	if !ok {
		logger.Debug("unknown event type", zap.String("type", ev.Type))
		return
	}
	handler(ev)
}

func (a *App) onSelect(ev protocol.Event) {
	if a.catalog.Err() != nil {
		return
	}
	if cur, ok := a.catalog.Selected(); ok && cur.ID == ev.ID {
		return
	}
	selected, err := a.catalog.Select(ev.ID)
	if err != nil {
		logger.Warn("selection rejected", zap.String("id", ev.ID), zap.Error(err))
		return
	}
	a.applySelection(selected)
}

// applySelection resets placement and scale for the new product, bumps the
// load generation so an in-flight load for the old product can never commit,
// and requests the new viewport load.
func (a *App) applySelection(p catalog.Product) {
	a.generation++
	a.placement.OnProductChange(a.session.Presenting())
	a.scale.Reset()
	if a.session.HitTestAvailable() && a.placement.Phase() == placement.SeekingSurface {
		a.tracker.Arm()
	}

	a.viewport.Begin(p)
	a.viewport.Norm = model.IdentityTransform()
	a.manager.Load(a.ctx, assets.Request{Slot: slotViewport, Generation: a.generation, Product: p})
	a.dirty = true
	logger.Info("product selected",
		zap.String("id", p.ID),
		zap.String("name", p.Name),
		zap.Uint64("generation", a.generation))
}

func (a *App) onSession(ev protocol.Event) {
	was := a.session.Presenting()
	if ev.Presenting {
		a.session.Start(ev.HitTest)
	} else {
		a.session.End()
	}
	if a.session.Presenting() != was {
		a.dirty = true
	}
}

// onFrame applies one frame's hit-test result. Frames without a hit keep the
// previous reticle pose.
func (a *App) onFrame(ev protocol.Event) {
	m, ok := ev.HitMatrix()
	if !ok {
		return
	}
	pose, ok := a.tracker.Observe(m)
	if !ok {
		return
	}
	a.placement.OnHitTestPose(pose)
	a.dirty = true
}

func (a *App) onPlace(protocol.Event) {
	if !a.placement.ConfirmPlacement() {
		return
	}
	a.tracker.Disarm()
	a.dirty = true
	logger.Info("placement confirmed")
}

func (a *App) onScale(ev protocol.Event) {
	if a.placement.Phase() != placement.Placed {
		return
	}
	var applied bool
	switch ev.Direction {
	case protocol.ScaleIncrease:
		applied = a.scale.Increase()
	case protocol.ScaleDecrease:
		applied = a.scale.Decrease()
	}
	if applied {
		a.dirty = true
	}
}

// commit applies one load result. Viewport results from a superseded
// generation are discarded so a stale model can never flash in after a newer
// selection.
func (a *App) commit(res assets.Result) {
	if res.Slot == slotViewport {
		if res.Generation != a.generation {
			logger.Debug("discarding stale load",
				zap.String("id", res.Product.ID),
				zap.Uint64("generation", res.Generation),
				zap.Uint64("current", a.generation))
			return
		}
		a.resolvePane(&a.viewport, res)
		return
	}

	if res.Slot < 0 || res.Slot >= len(a.gallery) {
		return
	}
	target := &a.gallery[res.Slot]
	if target.Product.ID != res.Product.ID {
		return
	}
	a.resolvePane(target, res)
}

func (a *App) resolvePane(target *pane, res assets.Result) {
	target.Resolve(res)
	if res.Err != nil {
		logger.Warn("model load failed",
			zap.String("id", res.Product.ID),
			zap.Int("slot", res.Slot),
			zap.Error(res.Err))
		target.Norm = model.IdentityTransform()
	} else {
		target.Norm = model.Normalize(res.Model.Bounds, a.targetSize)
	}
	a.dirty = true
}

func (a *App) publish() {
	a.seq++
	a.dirty = false
	a.publisher.Publish(a.snapshot())
}
