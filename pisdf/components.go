// File: components.go
// Role: connected-component discovery over a graph's vertex/edge arena,
// used by the BRV solver (spec.md §4.4: the repetition vector is solved
// independently per connected component).
package pisdf

// ConnectedComponents partitions g.Vertices into undirected connected
// components, ignoring edge direction, and returns them as slices of
// vertex indices within g.Vertices. Mirrors bfs.BFS's traversal shape,
// specialized to an arena of pointers instead of string-keyed adjacency.
func (g *Graph) ConnectedComponents() [][]int {
	n := len(g.Vertices)
	visited := make([]bool, n)
	var components [][]int

	for start := 0; start < n; start++ {
		if visited[start] {
			continue
		}
		var component []int
		queue := []int{start}
		visited[start] = true
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			component = append(component, cur)
			for _, neighbor := range g.neighbors(g.Vertices[cur]) {
				if !visited[neighbor.Index] {
					visited[neighbor.Index] = true
					queue = append(queue, neighbor.Index)
				}
			}
		}
		components = append(components, component)
	}
	return components
}

// neighbors returns every vertex directly connected to v by an edge in
// either direction.
func (g *Graph) neighbors(v *Vertex) []*Vertex {
	var out []*Vertex
	for _, e := range v.In {
		if e != nil {
			out = append(out, e.Source)
		}
	}
	for _, e := range v.Out {
		if e != nil {
			out = append(out, e.Sink)
		}
	}
	return out
}
