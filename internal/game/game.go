package game

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"taproom/internal/config"
	"taproom/internal/graphics"
	"taproom/internal/render"
	"taproom/internal/threading/core"
	"taproom/internal/threading/monitoring"
	"taproom/internal/world"
)

const (
	perfReportInterval = 5 * time.Second
	perfMinFPS         = 30
)

// Game adapts a Session and a Renderer to ebiten.Game.
type Game struct {
	cfg      *config.Config
	log      logrus.FieldLogger
	session  *Session
	renderer *render.Renderer
	textures *graphics.TextureManager
	pool     *core.WorkerPool
	monitor  *monitoring.PerformanceMonitor

	view       *ebiten.Image
	lastReport time.Time

	scores     *HighScores
	scoresPath string
	lastRank   int
}

// NewGame wires a session on level to a renderer that samples textures.
func NewGame(cfg *config.Config, level *world.Level, textures *graphics.TextureManager, log logrus.FieldLogger, opts ...SessionOption) (*Game, error) {
	session, err := NewSession(cfg, level, log, nil, opts...)
	if err != nil {
		return nil, err
	}

	g := &Game{
		cfg:        cfg,
		log:        log,
		session:    session,
		textures:   textures,
		monitor:    monitoring.NewPerformanceMonitor(),
		view:       ebiten.NewImage(cfg.GetScreenWidth(), cfg.GetScreenHeight()),
		lastReport: time.Now(),
		scores:     &HighScores{},
	}
	g.loadHighScores()

	opts := []render.Option{render.WithMonitor(g.monitor)}
	if cfg.Graphics.ParallelColumns {
		g.pool = core.CreateDefaultWorkerPool()
		opts = append(opts, render.WithWorkerPool(g.pool))
		log.WithField("workers", g.pool.GetNumWorkers()).Info("parallel column rendering enabled")
	}
	g.renderer = render.NewRenderer(cfg, session.Grid(), session.Doors(), textures, opts...)
	return g, nil
}

// Session exposes the simulation.
func (g *Game) Session() *Session { return g.session }

// Close stops the worker pool.
func (g *Game) Close() {
	if g.pool != nil {
		g.pool.Stop()
		g.pool = nil
	}
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	in := PollKeyboard()
	dt := 1000 / float64(ebiten.TPS())
	prev := g.session.State
	g.monitor.Profile(monitoring.PassUpdate, func() {
		g.session.Update(dt, in)
	})
	g.recordFinish(prev, time.Now())
	g.reportPerformance()
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	ft := g.monitor.StartFrame()
	defer ft.EndFrame()

	s := g.session
	if s.State == StateTitle {
		g.drawTitle(screen)
		return
	}

	frame := g.renderer.Render(s.Camera(), s.Sprites(), s.Overlay())
	g.view.WritePixels(frame.Pixels.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(frame.ShakeX), float64(frame.ShakeY))
	screen.DrawImage(g.view, op)

	g.drawHUD(screen)
	g.drawMessage(screen)
	g.drawStateOverlay(screen)
	if s.ShowDebug {
		g.drawDebug(screen)
	}
}

// Layout implements ebiten.Game. The logical screen never changes size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cfg.GetScreenWidth(), g.cfg.GetScreenHeight()
}

func (g *Game) reportPerformance() {
	if time.Since(g.lastReport) < perfReportInterval {
		return
	}
	g.lastReport = time.Now()

	snap := g.monitor.Snapshot()
	g.log.WithFields(logrus.Fields{
		"fps":        snap.FramesPerSec,
		"frame_ms":   snap.AvgFrameMs,
		"rays":       snap.RaysCast,
		"sprites":    snap.SpritesDrawn,
		"alloc_mb":   snap.MemoryAllocMB,
		"goroutines": snap.Goroutines,
	}).Debug("performance")
	for _, alert := range g.monitor.CheckPerformanceAlerts(perfMinFPS) {
		g.log.WithFields(logrus.Fields{
			"type":      alert.Type,
			"value":     alert.Value,
			"threshold": alert.Threshold,
		}).Warn(alert.Message)
	}
}

func (g *Game) loadHighScores() {
	if g.cfg.Assets.HighScores == "" {
		return
	}
	g.scoresPath = SavePath(g.cfg.Assets.HighScores)
	scores, err := LoadHighScores(g.scoresPath)
	if err != nil {
		g.log.WithError(err).Warn("starting with an empty high score table")
		return
	}
	g.scores = scores
}

// recordFinish adds the run to the high score table when the session has
// just reached victory or game over.
func (g *Game) recordFinish(prev GameState, now time.Time) {
	state := g.session.State
	if state == prev || (state != StateVictory && state != StateGameOver) {
		return
	}

	entry := newHighScoreEntry(g.session, now)
	g.lastRank = g.scores.Add(entry)
	log := g.log.WithFields(logrus.Fields{
		"score":   entry.Score,
		"outcome": entry.Outcome,
		"rank":    g.lastRank,
	})
	if g.lastRank == 0 || g.scoresPath == "" {
		log.Info("run finished")
		return
	}
	if err := g.scores.Save(g.scoresPath); err != nil {
		log.WithError(err).Warn("failed to save high scores")
		return
	}
	log.Info("new high score")
}
