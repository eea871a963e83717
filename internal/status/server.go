package status

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/iotsec/oscore-sender/pkg/oscore"
)

// Registry is the set of security contexts a running oscoresend process
// exposes for introspection, keyed by an operator-chosen name (typically
// the peer's hostname or device ID).
type Registry struct {
	contexts map[string]*oscore.Context
}

// NewRegistry builds an empty Registry.
func NewRegistry() *Registry {
	return &Registry{contexts: make(map[string]*oscore.Context)}
}

// Register adds ctx under name, replacing any context already there.
func (r *Registry) Register(name string, ctx *oscore.Context) {
	r.contexts[name] = ctx
}

type snapshot struct {
	Name           string `json:"name"`
	SenderSeqNum   uint64 `json:"sender_seq_num"`
	AwaitingReboot bool   `json:"awaiting_reboot_recovery"`
	HasCachedEcho  bool   `json:"has_cached_echo"`
}

func snapshotOf(name string, ctx *oscore.Context) snapshot {
	ctx.Lock()
	defer ctx.Unlock()
	return snapshot{
		Name:           name,
		SenderSeqNum:   ctx.SC.SeqNum,
		AwaitingReboot: ctx.RRC.Reboot,
		HasCachedEcho:  len(ctx.RRC.EchoOptVal) > 0,
	}
}

// New builds the status server's HTTP handler: GET /contexts lists every
// registered context's snapshot, GET /contexts/{name} returns one.
func New(reg *Registry) http.Handler {
	r := chi.NewRouter()
	r.Use(Logger)
	r.Use(Recoverer)

	r.Get("/contexts", func(w http.ResponseWriter, req *http.Request) {
		names := make([]string, 0, len(reg.contexts))
		for name := range reg.contexts {
			names = append(names, name)
		}
		sort.Strings(names)

		snapshots := make([]snapshot, 0, len(names))
		for _, name := range names {
			snapshots = append(snapshots, snapshotOf(name, reg.contexts[name]))
		}
		writeJSON(w, http.StatusOK, snapshots)
	})

	r.Get("/contexts/{name}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "name")
		ctx, ok := reg.contexts[name]
		if !ok {
			http.Error(w, fmt.Sprintf("context %q not found", name), http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, snapshotOf(name, ctx))
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
