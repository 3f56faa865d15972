package graph

// Adjacency maps each vertex to its neighbors. Every vertex of the graph is a
// key, including isolated ones. Neighbor order follows edge order.
type Adjacency map[Vertex][]Vertex

// BuildAdjacency derives the adjacency index for the given vertices and
// canonical edges: for each edge (a,b), b is appended to a's list and a to
// b's. Neighbor lists are free of duplicates as long as the edges are.
func BuildAdjacency(vertices []Vertex, edges []Edge) Adjacency {
	adj := make(Adjacency, len(vertices))
	for _, v := range vertices {
		adj[v] = nil
	}
	for _, e := range edges {
		adj[e.A] = append(adj[e.A], e.B)
		adj[e.B] = append(adj[e.B], e.A)
	}
	return adj
}

// Degree returns the number of neighbors of v.
func (a Adjacency) Degree(v Vertex) int {
	return len(a[v])
}
