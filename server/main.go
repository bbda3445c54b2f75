package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/meikuraledutech/canvas"
	"github.com/meikuraledutech/canvas/backend"
	"github.com/meikuraledutech/canvas/memory"
	"github.com/meikuraledutech/canvas/postgres"
)

// session bundles the per-canvas components. Each canvas lives only as long
// as its session; nothing about the node layout is persisted.
type session struct {
	store   *canvas.Store
	library *canvas.Library
	drag    *canvas.Drag
	runner  *canvas.Runner
	mat     *canvas.Materializer
}

type server struct {
	mu       sync.Mutex
	sessions map[string]*session

	registry canvas.AgentRegistry
	assets   canvas.AssetStore
	resolve  canvas.ExecutorResolver
	clip     canvas.Clipboard
}

func (s *server) create() string {
	store := canvas.NewStore(canvas.Point{X: 640, Y: 360})
	sess := &session{
		store:   store,
		library: canvas.NewLibrary(store, s.registry),
		drag:    canvas.NewDrag(store),
		runner:  canvas.NewRunner(store, s.resolve),
		mat:     canvas.NewMaterializer(store, s.assets, s.clip),
	}
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = sess
	s.mu.Unlock()
	return id
}

func (s *server) get(id string) *session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func (s *server) discard(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

type spawnRequest struct {
	Source   string         `json:"source"` // agent | template | primitive | asset
	AgentID  string         `json:"agent_id,omitempty"`
	Template string         `json:"template,omitempty"`
	Variant  canvas.Variant `json:"variant,omitempty"`
	AssetID  string         `json:"asset_id,omitempty"`
}

type dragRequest struct {
	NodeID  string       `json:"node_id,omitempty"`
	Pointer canvas.Point `json:"pointer"`
}

func newApp(s *server) *fiber.App {
	app := fiber.New()

	// ── Sessions ──────────────────────────────────────────────────────
	app.Post("/canvas", func(c fiber.Ctx) error {
		return c.Status(201).JSON(fiber.Map{"id": s.create()})
	})

	app.Delete("/canvas/:id", func(c fiber.Ctx) error {
		s.discard(c.Params("id"))
		return c.SendStatus(204)
	})

	// lookup resolves the canvas session or responds 404.
	lookup := func(c fiber.Ctx) (*session, error) {
		sess := s.get(c.Params("id"))
		if sess == nil {
			return nil, c.Status(404).JSON(fiber.Map{"error": "canvas not found"})
		}
		return sess, nil
	}

	// ── Nodes ─────────────────────────────────────────────────────────
	app.Get("/canvas/:id/nodes", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		return c.JSON(fiber.Map{
			"nodes":    sess.store.Nodes(),
			"dragging": sess.drag.Active(),
		})
	})

	app.Post("/canvas/:id/nodes", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		var req spawnRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}

		var nodeID string
		switch req.Source {
		case "agent":
			nodeID, err = sess.library.SpawnAgent(c.Context(), req.AgentID)
			if errors.Is(err, canvas.ErrAgentNotFound) {
				return c.Status(404).JSON(fiber.Map{"error": "agent not found"})
			}
		case "template":
			nodeID, err = sess.library.SpawnTemplate(req.Template)
		case "primitive":
			nodeID, err = sess.library.SpawnPrimitive(req.Variant)
		case "asset":
			var a *canvas.Asset
			a, err = s.assets.Get(c.Context(), req.AssetID)
			if err == nil && a == nil {
				return c.Status(404).JSON(fiber.Map{"error": "asset not found"})
			}
			if err == nil {
				nodeID = sess.library.SpawnFromAsset(a)
			}
		default:
			return c.Status(400).JSON(fiber.Map{"error": "unknown spawn source"})
		}
		if err != nil {
			return c.Status(422).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(fiber.Map{"id": nodeID})
	})

	app.Delete("/canvas/:id/nodes/:nodeID", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		sess.store.Remove(c.Params("nodeID"))
		return c.SendStatus(204)
	})

	app.Patch("/canvas/:id/nodes/:nodeID/content", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		var body struct {
			Content string `json:"content"`
		}
		if err := c.Bind().JSON(&body); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		sess.store.SetContent(c.Params("nodeID"), body.Content)
		return c.SendStatus(204)
	})

	app.Post("/canvas/:id/nodes/:nodeID/collapse", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		sess.store.ToggleCollapsed(c.Params("nodeID"))
		return c.SendStatus(204)
	})

	// ── Drag ──────────────────────────────────────────────────────────
	app.Post("/canvas/:id/drag/start", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		var req dragRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		if !sess.drag.Start(req.NodeID, req.Pointer) {
			return c.Status(409).JSON(fiber.Map{"error": "drag not started"})
		}
		return c.SendStatus(204)
	})

	app.Post("/canvas/:id/drag/move", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		var req dragRequest
		if err := c.Bind().JSON(&req); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		sess.drag.Move(req.Pointer)
		return c.SendStatus(204)
	})

	app.Post("/canvas/:id/drag/end", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		sess.drag.End()
		return c.SendStatus(204)
	})

	// ── Execution ─────────────────────────────────────────────────────
	app.Post("/canvas/:id/nodes/:nodeID/run", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		nodeID := c.Params("nodeID")
		n, ok := sess.store.Get(nodeID)
		if !ok {
			return c.Status(404).JSON(fiber.Map{"error": "node not found"})
		}
		if n.Binding == nil {
			return c.Status(422).JSON(fiber.Map{"error": "node has no agent binding"})
		}
		if n.Running {
			return c.Status(409).JSON(fiber.Map{"error": "node is already running"})
		}

		// The run outlives the request; clients poll the node for
		// running/result.
		go func() {
			if err := sess.runner.Run(context.Background(), nodeID); err != nil {
				slog.Warn("run rejected", "node_id", nodeID, "error", err)
			}
		}()
		return c.SendStatus(202)
	})

	app.Get("/canvas/:id/nodes/:nodeID", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		n, ok := sess.store.Get(c.Params("nodeID"))
		if !ok {
			return c.Status(404).JSON(fiber.Map{"error": "node not found"})
		}
		return c.JSON(n)
	})

	// ── Output ────────────────────────────────────────────────────────
	app.Post("/canvas/:id/nodes/:nodeID/output/copy", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		copied, err := sess.mat.CopyOutput(c.Params("nodeID"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"copied": copied})
	})

	app.Post("/canvas/:id/nodes/:nodeID/output/save", func(c fiber.Ctx) error {
		sess, err := lookup(c)
		if sess == nil {
			return err
		}
		var scope canvas.SaveScope
		if err := c.Bind().JSON(&scope); err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "invalid body"})
		}
		asset, err := sess.mat.SaveAsAsset(c.Context(), c.Params("nodeID"), scope)
		if errors.Is(err, canvas.ErrNodeNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": "node not found"})
		}
		if errors.Is(err, canvas.ErrNoResult) {
			return c.Status(422).JSON(fiber.Map{"error": "node has no result"})
		}
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(201).JSON(asset)
	})

	// ── Catalog ───────────────────────────────────────────────────────
	app.Get("/agents", func(c fiber.Ctx) error {
		agents, err := s.registry.List(c.Context())
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(agents)
	})

	app.Get("/catalog", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"templates":  canvas.OutputTemplates,
			"primitives": canvas.PrimitiveKinds,
		})
	})

	app.Get("/assets", func(c fiber.Ctx) error {
		assets, err := s.assets.List(c.Context(), c.Query("project_id"))
		if err != nil {
			return c.Status(500).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(assets)
	})

	return app
}

func main() {
	var assets canvas.AssetStore
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		pool, err := pgxpool.New(context.Background(), dbURL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()
		store := postgres.New(pool)
		if err := store.CreateSchema(context.Background()); err != nil {
			log.Fatalf("schema: %v", err)
		}
		assets = store
	} else {
		assets = memory.NewAssetStore()
	}

	var registry canvas.AgentRegistry = memory.NewRegistry(nil)
	if path := os.Getenv("AGENTS_FILE"); path != "" {
		r, err := memory.LoadRegistry(path)
		if err != nil {
			log.Fatalf("agents: %v", err)
		}
		registry = r
	}

	cfg := backend.Config{WorkflowBaseURL: os.Getenv("WORKFLOW_BASE_URL")}

	s := &server{
		sessions: make(map[string]*session),
		registry: registry,
		assets:   assets,
		resolve:  cfg.Resolve,
		clip:     canvas.SystemClipboard(),
	}

	addr := os.Getenv("CANVAS_ADDR")
	if addr == "" {
		addr = ":3000"
	}
	log.Fatal(newApp(s).Listen(addr))
}
