// Command pivot ranks the vertices of an undirected graph by betweenness
// centrality.
package main

import "github.com/papapumpkin/pivot/cmd"

func main() {
	cmd.Execute()
}
