package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"

	"github.com/meikuraledutech/canvas"
	"github.com/meikuraledutech/canvas/backend"
	"github.com/meikuraledutech/canvas/memory"
)

func main() {
	ctx := context.Background()

	// A stand-in webhook backend that drafts copy from the posted context.
	webhook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload canvas.ExecutionPayload
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			http.Error(w, "bad payload", http.StatusBadRequest)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"output": "Draft copy based on:\n" + payload.Context,
		})
	}))
	defer webhook.Close()

	registry := memory.NewRegistry([]canvas.AgentDescriptor{{
		ID:          "copywriter",
		DisplayName: "Copywriter",
		Mode:        canvas.ModePredefinedWebhook,
		WebhookURL:  webhook.URL,
	}})
	assets := memory.NewAssetStore()

	store := canvas.NewStore(canvas.Point{X: 640, Y: 360})
	library := canvas.NewLibrary(store, registry)
	drag := canvas.NewDrag(store)
	runner := canvas.NewRunner(store, backend.Config{}.Resolve)
	mat := canvas.NewMaterializer(store, assets, canvas.SystemClipboard())

	// ── Spawn a text input and an agent ───────────────────────────────
	textID, err := library.SpawnPrimitive(canvas.VariantText)
	if err != nil {
		log.Fatalf("spawn text: %v", err)
	}
	store.SetContent(textID, "Our product is a solar-powered kettle.")

	agentID, err := library.SpawnAgent(ctx, "copywriter")
	if err != nil {
		log.Fatalf("spawn agent: %v", err)
	}

	// ── Drag the agent node somewhere nicer ───────────────────────────
	drag.Start(agentID, canvas.Point{X: 700, Y: 420})
	drag.Move(canvas.Point{X: 900, Y: 500})
	drag.End()

	// ── Run the agent ─────────────────────────────────────────────────
	if err := runner.Run(ctx, agentID); err != nil {
		log.Fatalf("run: %v", err)
	}
	fmt.Println("canvas after the run:")
	printJSON(store.Nodes())

	// ── Materialize the result ────────────────────────────────────────
	asset, err := mat.SaveAsAsset(ctx, agentID, canvas.SaveScope{ProjectID: "demo"})
	if err != nil {
		log.Fatalf("save asset: %v", err)
	}
	fmt.Println("\nsaved asset:")
	printJSON(asset)

	// ── Spawn a node back from the saved asset ────────────────────────
	library.SpawnFromAsset(asset)
	fmt.Printf("\nnodes on canvas: %d\n", store.Len())
}

func printJSON(v any) {
	out, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(out))
}
