package canvas

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// ExecutorResolver picks the backend for an agent binding. Resolution
// happens once per run, not per call site.
type ExecutorResolver func(*AgentBinding) AgentExecutor

// Runner executes agent nodes: it snapshots the canvas into a context
// string, dispatches to the resolved backend, normalizes the response, and
// writes the outcome back through the store. Runs on different nodes are
// fully independent; a node that is already running rejects a second run
// with ErrAlreadyRunning.
type Runner struct {
	store   *Store
	resolve ExecutorResolver
}

func NewRunner(store *Store, resolve ExecutorResolver) *Runner {
	return &Runner{store: store, resolve: resolve}
}

// Run executes the agent node synchronously and settles its state before
// returning: Result holds either the normalized output or an "Error: ..."
// message, and Running is false again on every path. Backend failures are
// written into the node, not returned; the returned error only reports
// contract violations (unknown node, no binding, already running).
func (r *Runner) Run(ctx context.Context, nodeID string) error {
	n, err := r.store.BeginRun(nodeID)
	if err != nil {
		return err
	}
	defer r.store.SetRunning(nodeID, false)

	// Point-in-time snapshot: sibling edits after this line do not feed
	// into the run.
	contextStr := BuildContext(r.store.Nodes(), nodeID)
	payload := ExecutionPayload{
		Query:   buildQuery(n, contextStr),
		Context: contextStr,
	}

	res, err := r.resolve(n.Binding).Execute(ctx, payload)
	if err != nil {
		slog.Error("agent execution failed", "node_id", nodeID, "agent", n.Binding.Name, "error", err)
		r.store.SetResult(nodeID, "Error: "+err.Error())
		return nil
	}
	if !res.Success {
		msg := res.Error
		if msg == "" {
			msg = "agent execution failed"
		}
		slog.Error("agent reported failure", "node_id", nodeID, "agent", n.Binding.Name, "message", msg)
		r.store.SetResult(nodeID, "Error: "+msg)
		return nil
	}

	r.store.SetResult(nodeID, Normalize(res.Result))
	slog.Info("agent run finished", "node_id", nodeID, "agent", n.Binding.Name)
	return nil
}

// BuildContext aggregates sibling node content into one context string:
// every node except selfID and those with empty content contributes a
// "[title]: content" line, joined by blank lines.
func BuildContext(nodes []Node, selfID string) string {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if n.ID == selfID || n.Content == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("[%s]: %s", n.Title, n.Content))
	}
	return strings.Join(parts, "\n\n")
}

func buildQuery(n Node, contextStr string) string {
	if contextStr == "" {
		return n.Title
	}
	return n.Title + "\n\nUse the following canvas content as context:\n\n" + contextStr
}
