package loader

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/featherframe/feather-loader/config"
	"github.com/featherframe/feather-loader/dom"
	"github.com/featherframe/feather-loader/errors"
	"github.com/zishang520/engine.io/log"
)

var loader_log = log.NewLog("feather-loader:loader")

// Loader dispatches load requests against a document environment.
type Loader struct {
	doc dom.Document
}

// Loader constructor.
func New(doc dom.Document) *Loader {
	return &Loader{doc: doc}
}

func (l *Loader) Document() dom.Document {
	return l.doc
}

// The request tree. Top-level arguments run in parallel, an array
// argument is a serial group, an array inside a serial group is again a
// parallel group, alternating at every level.
type treeNode interface {
	node()
}

type leafNode struct {
	raw any
}

type serialNode struct {
	members []treeNode
}

type parallelNode struct {
	members []treeNode
}

func (*leafNode) node()     {}
func (*serialNode) node()   {}
func (*parallelNode) node() {}

func parallelChild(raw any) treeNode {
	if members, ok := asGroup(raw); ok {
		group := &serialNode{}
		for _, member := range members {
			group.members = append(group.members, serialChild(member))
		}
		return group
	}
	return &leafNode{raw: raw}
}

func serialChild(raw any) treeNode {
	if members, ok := asGroup(raw); ok {
		group := &parallelNode{}
		for _, member := range members {
			group.members = append(group.members, parallelChild(member))
		}
		return group
	}
	return &leafNode{raw: raw}
}

// asGroup recognizes a slice-shaped request of any element type as a
// group, so Load([]string{...}) works like Load([]any{...}). []byte
// stays a leaf; a byte slice is data, not a request list.
func asGroup(raw any) ([]any, bool) {
	if members, ok := raw.([]any); ok {
		return members, true
	}
	v := reflect.ValueOf(raw)
	if v.Kind() != reflect.Slice || v.Type().Elem().Kind() == reflect.Uint8 {
		return nil, false
	}
	members := make([]any, v.Len())
	for i := range members {
		members[i] = v.Index(i).Interface()
	}
	return members, true
}

// job is the per-invocation state: the failure flag set on the first
// failed leaf and never reset for that invocation.
type job struct {
	loader *Loader

	mu_failed sync.RWMutex
	_failed   bool
}

func (j *job) setFailed() {
	j.mu_failed.Lock()
	defer j.mu_failed.Unlock()

	j._failed = true
}

func (j *job) failed() bool {
	j.mu_failed.RLock()
	defer j.mu_failed.RUnlock()

	return j._failed
}

// Load resolves every request and returns a result tree echoing the
// request shape: a scalar for one non-array request, an ordered slice
// per array and per multi-request call. Siblings load concurrently;
// members of a slice argument load strictly one after another.
//
// A leaf failure never cancels its siblings. Load waits for every leaf
// to settle, then returns the full tree either way; when any leaf failed
// the tree keeps the successful values in place, failed positions hold
// their error value, and the returned error is the leaf error itself for
// a single-request call or a *errors.BatchError carrying the tree.
func (l *Loader) Load(requests ...any) (any, error) {
	root := &parallelNode{}
	for _, request := range requests {
		root.members = append(root.members, parallelChild(request))
	}

	j := &job{loader: l}
	results := j.run(root).([]any)

	var res any = results
	if len(requests) == 1 {
		res = results[0]
	}

	if !j.failed() {
		return res, nil
	}
	if err, ok := res.(error); ok {
		return res, err
	}
	return res, errors.NewBatchError(res)
}

// run evaluates one node of the request tree; the returned value echoes
// the node's shape.
func (j *job) run(n treeNode) any {
	switch v := n.(type) {
	case *leafNode:
		return j.leaf(v.raw)
	case *serialNode:
		// a member is not dispatched until its predecessor has settled
		out := make([]any, len(v.members))
		for i, member := range v.members {
			out[i] = j.run(member)
		}
		return out
	case *parallelNode:
		out := make([]any, len(v.members))
		wg := sync.WaitGroup{}
		wg.Add(len(v.members))
		for i, member := range v.members {
			go func(i int, member treeNode) {
				defer wg.Done()
				out[i] = j.run(member)
			}(i, member)
		}
		wg.Wait()
		return out
	}
	return nil
}

// leaf settles a single request: normalize, dispatch the kind's
// strategy, record the outcome in place. Failures never propagate past
// the leaf.
func (j *job) leaf(raw any) any {
	opts, err := j.loader.normalize(raw)
	if err != nil {
		j.setFailed()
		return err
	}

	loader_log.Debug("loading %s as %s", opts.Url(), opts.Kind())
	strat, ok := _strategies[opts.Kind()]
	if !ok {
		j.setFailed()
		return errors.NewLoadError(opts.Url(), fmt.Errorf("unknown kind %q", opts.Kind()))
	}
	res, err := strat(j.loader, opts)
	if err != nil {
		j.setFailed()
		return errors.NewLoadError(opts.Url(), err)
	}
	return res
}

// normalize produces the LoadRequest form of one raw request. The
// caller's options object is filled in place, not cloned.
func (l *Loader) normalize(raw any) (config.RequestOptionsInterface, error) {
	var opts config.RequestOptionsInterface
	switch v := raw.(type) {
	case string:
		opts = config.NewRequestOptions()
		opts.SetUrl(v)
	case config.RequestOptionsInterface:
		opts = v
	default:
		return nil, fmt.Errorf("loader: unsupported request type %T", raw)
	}

	if opts.Url() == "" {
		return nil, fmt.Errorf("loader: request without url")
	}
	if opts.GetRawMethod() == nil {
		opts.SetMethod(MethodGet)
	}
	if opts.GetRawKind() == nil || opts.Kind() == "" {
		opts.SetKind(resolveKind(opts.Url()))
	}
	if opts.Context() == nil {
		opts.SetContext(l.doc.Head())
	}
	return opts, nil
}
