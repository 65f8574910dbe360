package beam

import "fmt"

// Pair is an undirected joint connection with the orientation it was
// discovered in
type Pair struct {
	From string
	To   string
}

// Key returns the unordered key of the pair
func (p Pair) Key() SpanKey {
	return KeyOf(p.From, p.To)
}

// Topology is the validated connectivity of a beam chain
type Topology struct {
	Joints []Joint  // input order
	Pairs  []Pair   // one entry per span, in discovery order
	Chain  []string // joint labels walked from one end to the other

	adj map[string][]string
}

// Neighbors returns the joints connected to label, in discovery order
func (t *Topology) Neighbors(label string) []string {
	return t.adj[label]
}

// BuildTopology turns joint neighbor lists into a deduplicated list of
// spans. The joints must form a single simple chain: at most two neighbors
// each, connected, acyclic, with Fixed or Free supports only at the ends.
func BuildTopology(joints []Joint) (*Topology, error) {
	if len(joints) < 2 {
		return nil, &TopologyError{Reason: fmt.Sprintf("at least two joints are required, got %d", len(joints))}
	}

	index := make(map[string]int, len(joints))
	for i, j := range joints {
		if j.Label == "" {
			return nil, &TopologyError{Reason: fmt.Sprintf("joint %d has an empty label", i+1)}
		}
		if _, dup := index[j.Label]; dup {
			return nil, &TopologyError{Joint: j.Label, Reason: "label is not unique"}
		}
		index[j.Label] = i
	}

	topo := &Topology{
		Joints: joints,
		adj:    make(map[string][]string, len(joints)),
	}
	seen := make(map[SpanKey]bool)

	for _, j := range joints {
		if len(j.Neighbors) > 2 {
			return nil, &TopologyError{Joint: j.Label, Reason: fmt.Sprintf("has %d neighbors, a beam chain allows at most 2", len(j.Neighbors))}
		}
		for _, n := range j.Neighbors {
			if n == j.Label {
				return nil, &TopologyError{Joint: j.Label, Reason: "lists itself as a neighbor"}
			}
			if _, ok := index[n]; !ok {
				return nil, &TopologyError{Joint: j.Label, Reason: fmt.Sprintf("unknown neighbor %q", n)}
			}
			key := KeyOf(j.Label, n)
			if seen[key] {
				continue
			}
			seen[key] = true
			topo.Pairs = append(topo.Pairs, Pair{From: j.Label, To: n})
			topo.adj[j.Label] = append(topo.adj[j.Label], n)
			topo.adj[n] = append(topo.adj[n], j.Label)
		}
	}

	for _, j := range joints {
		if len(topo.adj[j.Label]) > 2 {
			return nil, &TopologyError{Joint: j.Label, Reason: fmt.Sprintf("is connected to %d joints, a beam chain allows at most 2", len(topo.adj[j.Label]))}
		}
	}

	// connectivity
	visited := map[string]bool{joints[0].Label: true}
	queue := []string{joints[0].Label}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range topo.adj[cur] {
			if !visited[n] {
				visited[n] = true
				queue = append(queue, n)
			}
		}
	}
	for _, j := range joints {
		if !visited[j.Label] {
			return nil, &TopologyError{Joint: j.Label, Reason: fmt.Sprintf("is not connected to joint %q", joints[0].Label)}
		}
	}

	// a connected graph with n-1 edges is a tree; with degree <= 2 it is a chain
	if len(topo.Pairs) != len(joints)-1 {
		return nil, &TopologyError{Reason: fmt.Sprintf("joints form a cycle (%d spans for %d joints)", len(topo.Pairs), len(joints))}
	}

	for _, j := range joints {
		if !j.Support.Valid() {
			return nil, &TopologyError{Joint: j.Label, Reason: "missing or unknown support"}
		}
		if len(topo.adj[j.Label]) == 2 && !j.Support.Rotates() {
			return nil, &TopologyError{Joint: j.Label, Reason: fmt.Sprintf("interior joint cannot be %s, only pin or roller", j.Support)}
		}
	}

	topo.Chain = walkChain(joints, topo.adj)
	return topo, nil
}

// walkChain lists the joints from the first end joint in input order
func walkChain(joints []Joint, adj map[string][]string) []string {
	start := joints[0].Label
	for _, j := range joints {
		if len(adj[j.Label]) == 1 {
			start = j.Label
			break
		}
	}

	chain := make([]string, 0, len(joints))
	prev, cur := "", start
	for cur != "" {
		chain = append(chain, cur)
		next := ""
		for _, n := range adj[cur] {
			if n != prev {
				next = n
				break
			}
		}
		prev, cur = cur, next
	}
	return chain
}
