package service

// inflight tracks record ids with an outstanding mutation. The owner guards it with its own lock.
type inflight map[string]struct{}

func (f inflight) begin(id string) bool {
	if _, busy := f[id]; busy {
		return false
	}
	f[id] = struct{}{}
	return true
}

func (f inflight) done(id string) {
	delete(f, id)
}

func (f inflight) has(id string) bool {
	_, busy := f[id]
	return busy
}
