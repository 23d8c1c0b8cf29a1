package typeflow

// task is a tagged union of the two things the scheduler can deliver a
// type-delta to: a user Consumer, or a Transition forwarding into its
// destination. Exactly one of consumer/transition is set.
type task struct {
	consumer   Consumer
	transition *Transition
	types      []*Type
}

func (t task) deliver() {
	switch {
	case t.consumer != nil:
		t.consumer.Deliver(t.types)
	case t.transition != nil:
		t.transition.Deliver(t.types)
	}
}

// schedule appends a task to the worklist. It is safe to call from any
// goroutine during graph construction; the dispatch loop itself is meant
// to run on a single logical thread of control (spec §5).
func (e *Engine) schedule(t task) {
	e.mu.Lock()
	e.worklist = append(e.worklist, t)
	e.mu.Unlock()
}

// scheduleOrDeliver is how a catch-up delivery (AddConsumer, Connect) gets
// to its recipient. While the engine is still running, it is queued like
// any other task so delivery happens on the dispatch loop's single thread
// of control. Once the engine has quiescenced and locked, Run's dispatch
// loop has already returned and nothing will ever drain the worklist again
// — so a catch-up registered after the fact is delivered inline instead.
// This is safe: a Consumer/Transition's Deliver never grows a locked
// node's type set with something new (the catch-up is exactly the types
// the node already, authoritatively, holds).
func (e *Engine) scheduleOrDeliver(t task) {
	if e.Locked() {
		t.deliver()
		return
	}
	e.schedule(t)
}

func (e *Engine) popTask() (task, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.worklist) == 0 {
		return task{}, false
	}
	t := e.worklist[0]
	e.worklist = e.worklist[1:]
	return t, true
}

func (e *Engine) snapshotNodes() []*Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]*Node(nil), e.nodes...)
}

// Run drains the worklist and sweeps every node's pending set, repeating
// until a full sweep observes no pending types anywhere and the worklist
// is empty (spec §4.6). On quiescence it locks every node (invariant 9)
// and returns. If any node rejects a propagation because it was already
// locked, Run returns the resulting *LockViolationError immediately and
// leaves the graph in a partially-drained, locked state — per spec §4.7,
// engine state after such a failure must be considered unusable and the
// caller should abandon the run.
func (e *Engine) Run() error {
	for {
		progressed := false
		for {
			t, ok := e.popTask()
			if !ok {
				break
			}
			t.deliver()
			progressed = true
		}

		swept := false
		for _, n := range e.snapshotNodes() {
			if !n.hasPending() {
				continue
			}
			if err := n.applyPending(); err != nil {
				return err
			}
			swept = true
		}

		if !progressed && !swept {
			break
		}
	}
	return e.Lock()
}

// Lock transitions every node in the graph to the locked state. It is
// idempotent and is called automatically at the end of Run; embedders
// only need to call it directly if they want to lock before quiescence
// for some reason (e.g. to assert no more seeding should occur).
func (e *Engine) Lock() error {
	e.mu.Lock()
	e.locked = true
	nodes := append([]*Node(nil), e.nodes...)
	e.mu.Unlock()
	for _, n := range nodes {
		n.lock()
	}
	return nil
}

// Locked reports whether the engine has been locked.
func (e *Engine) Locked() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.locked
}
