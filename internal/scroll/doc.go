// Package scroll detects when a scrollable surface nears its end and asks a
// caller-supplied loader for more content, at most one request at a time.
//
// # Architecture
//
// A [Controller] is built in two phases. [New] creates it unbound; [Controller.Attach]
// resolves the [Target] to observe and subscribes to its scroll notifications
// through the injected [Host]. Notifications are debounced, then the
// [MetricsProvider] measures the target and [Detect] decides whether the
// boundary was reached:
//
//	host scroll notification
//	        │
//	        ▼
//	   debounce.Debouncer ──► MetricsProvider.Read ──► Detect
//	                                                     │ reached
//	                                                     ▼
//	                                           Controller.MaybeLoad ──► LoadFunc
//
// # Targets
//
// [ResolveTarget] picks what to observe. An explicit element wins, then the
// document, then the surface's own root. When neither an element nor the
// document was configured, [Controller.RegisterElement] may supply an
// element later and the controller re-subscribes to it.
//
// # Load State
//
// [State] is a plain struct. Loading stays true from the moment the loader
// is invoked until its result is applied. Err holds only the most recent
// failure, wrapped in an [errors.LoadError], and is cleared when the next
// load starts. Scrollable is recomputed on bind, on every evaluation and
// after every completion. Hosts that want change notifications install a
// hook with [WithStateHook].
//
// # Thread Safety
//
// Controller is safe for concurrent use. The loading flag is checked and set
// under a single mutex before the loader runs, so overlapping automatic and
// manual triggers never produce two concurrent loader invocations.
// Completions are delivered through the configured [debounce.Scheduler],
// which lets event-loop hosts run them on their own loop.
//
// # Teardown
//
// [Controller.Teardown] disarms the debouncer, releases the subscription and
// marks the controller so that any loader result arriving later is discarded.
// The in-flight loader itself is not cancelled.
package scroll
