package stats

// Metrics is a group of related stats that will be
// presented together. Values are either plain values or
// nested Metrics
type Metrics map[string]interface{}

// Group groups the metrics of several services
type Group map[string]Metrics

// NewGroup returns a new Group of metrics
func NewGroup() Group {
	return Group(make(map[string]Metrics))
}

// Add adds a set of metrics to the group
func (g Group) Add(key string, metrics Metrics) {
	g[key] = metrics
}
