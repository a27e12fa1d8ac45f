// Package algorithms provides graph primitives over a node set and an edge
// list, independent of relation semantics. Every function tolerates edges
// referencing nodes absent from the supplied node list by adding them to the
// adjacency map, so diagnostics never crash on a dangling reference.
package algorithms

import "sort"

// Edge is a directed pair of node ids
type Edge struct {
	Src string
	Dst string
}

// Degree holds a node's in- and out-degree
type Degree struct {
	In  int `json:"in"`
	Out int `json:"out"`
}

// BuildEdges projects (src, dst, kind) triples onto plain edges, keeping
// only the given kinds (nil keeps everything)
func BuildEdges(relations [][3]string, kinds []string) []Edge {
	var keep map[string]bool
	if kinds != nil {
		keep = map[string]bool{}
		for _, kind := range kinds {
			keep[kind] = true
		}
	}
	var edges []Edge
	for _, rel := range relations {
		if keep == nil || keep[rel[2]] {
			edges = append(edges, Edge{Src: rel[0], Dst: rel[1]})
		}
	}
	return edges
}

// adjacency builds a sorted adjacency map seeded with the node list and
// self-healed with any endpoint the edges mention
func adjacency(nodes []string, edges []Edge) (map[string][]string, []string) {
	adj := map[string][]string{}
	for _, node := range nodes {
		adj[node] = nil
	}
	for _, edge := range edges {
		adj[edge.Src] = append(adj[edge.Src], edge.Dst)
		if _, ok := adj[edge.Dst]; !ok {
			adj[edge.Dst] = nil
		}
	}
	order := make([]string, 0, len(adj))
	for node := range adj {
		order = append(order, node)
	}
	sort.Strings(order)
	for _, neighbors := range adj {
		sort.Strings(neighbors)
	}
	return adj, order
}

// FindCycles enumerates elementary cycles discovered by depth-first search.
// Each back edge yields one cycle, canonicalized by rotating its
// lexicographically smallest node to the front and deduplicated, so a cycle
// is reported exactly once no matter where the traversal starts. The
// traversal keeps an explicit stack rather than recursing.
func FindCycles(nodes []string, edges []Edge) [][]string {
	adj, order := adjacency(nodes, edges)

	seen := map[string]bool{}
	onStack := map[string]bool{}
	canonical := map[string][]string{}

	type frame struct {
		node string
		next int
	}

	for _, start := range order {
		if seen[start] {
			continue
		}
		var stack []frame
		var path []string
		push := func(node string) {
			seen[node] = true
			onStack[node] = true
			path = append(path, node)
			stack = append(stack, frame{node: node})
		}
		push(start)
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := adj[top.node]
			if top.next < len(neighbors) {
				neighbor := neighbors[top.next]
				top.next++
				if !seen[neighbor] {
					push(neighbor)
				} else if onStack[neighbor] {
					for i, node := range path {
						if node == neighbor {
							cycle := rotateToMin(append([]string{}, path[i:]...))
							canonical[cycleKey(cycle)] = cycle
							break
						}
					}
				}
				continue
			}
			onStack[top.node] = false
			path = path[:len(path)-1]
			stack = stack[:len(stack)-1]
		}
	}

	keys := make([]string, 0, len(canonical))
	for key := range canonical {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	cycles := make([][]string, 0, len(keys))
	for _, key := range keys {
		cycles = append(cycles, canonical[key])
	}
	return cycles
}

func rotateToMin(cycle []string) []string {
	if len(cycle) == 0 {
		return cycle
	}
	minIdx := 0
	for i, node := range cycle {
		if node < cycle[minIdx] {
			minIdx = i
		}
	}
	return append(cycle[minIdx:], cycle[:minIdx]...)
}

func cycleKey(cycle []string) string {
	key := ""
	for _, node := range cycle {
		key += node + "\x00"
	}
	return key
}

// WeaklyConnectedComponents returns the components of the underlying
// undirected graph, each sorted, in discovery order of their smallest node
func WeaklyConnectedComponents(nodes []string, edges []Edge) [][]string {
	undirected := map[string]map[string]bool{}
	touch := func(node string) map[string]bool {
		if undirected[node] == nil {
			undirected[node] = map[string]bool{}
		}
		return undirected[node]
	}
	for _, node := range nodes {
		touch(node)
	}
	for _, edge := range edges {
		touch(edge.Src)[edge.Dst] = true
		touch(edge.Dst)[edge.Src] = true
	}

	order := make([]string, 0, len(undirected))
	for node := range undirected {
		order = append(order, node)
	}
	sort.Strings(order)

	visited := map[string]bool{}
	var components [][]string
	for _, start := range order {
		if visited[start] {
			continue
		}
		visited[start] = true
		component := []string{start}
		queue := []string{start}
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			for neighbor := range undirected[node] {
				if !visited[neighbor] {
					visited[neighbor] = true
					component = append(component, neighbor)
					queue = append(queue, neighbor)
				}
			}
		}
		sort.Strings(component)
		components = append(components, component)
	}
	return components
}

// StronglyConnectedComponents runs Tarjan's algorithm with an explicit
// frame stack. Components are sorted internally and the result is ordered
// by (size, members).
func StronglyConnectedComponents(nodes []string, edges []Edge) [][]string {
	adj, order := adjacency(nodes, edges)

	index := 0
	indexOf := map[string]int{}
	lowlink := map[string]int{}
	onStack := map[string]bool{}
	var tarjanStack []string
	var components [][]string

	type frame struct {
		node string
		next int
	}

	for _, start := range order {
		if _, visited := indexOf[start]; visited {
			continue
		}
		stack := []frame{{node: start}}
		indexOf[start] = index
		lowlink[start] = index
		index++
		tarjanStack = append(tarjanStack, start)
		onStack[start] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := adj[top.node]
			if top.next < len(neighbors) {
				neighbor := neighbors[top.next]
				top.next++
				if _, visited := indexOf[neighbor]; !visited {
					indexOf[neighbor] = index
					lowlink[neighbor] = index
					index++
					tarjanStack = append(tarjanStack, neighbor)
					onStack[neighbor] = true
					stack = append(stack, frame{node: neighbor})
				} else if onStack[neighbor] {
					if indexOf[neighbor] < lowlink[top.node] {
						lowlink[top.node] = indexOf[neighbor]
					}
				}
				continue
			}

			node := top.node
			stack = stack[:len(stack)-1]
			if len(stack) > 0 {
				parent := &stack[len(stack)-1]
				if lowlink[node] < lowlink[parent.node] {
					lowlink[parent.node] = lowlink[node]
				}
			}
			if lowlink[node] == indexOf[node] {
				var component []string
				for {
					member := tarjanStack[len(tarjanStack)-1]
					tarjanStack = tarjanStack[:len(tarjanStack)-1]
					onStack[member] = false
					component = append(component, member)
					if member == node {
						break
					}
				}
				sort.Strings(component)
				components = append(components, component)
			}
		}
	}

	sort.Slice(components, func(i, j int) bool {
		if len(components[i]) != len(components[j]) {
			return len(components[i]) < len(components[j])
		}
		for k := range components[i] {
			if components[i][k] != components[j][k] {
				return components[i][k] < components[j][k]
			}
		}
		return false
	})
	return components
}

// InOutDegree counts per-node in- and out-degrees
func InOutDegree(nodes []string, edges []Edge) map[string]Degree {
	degrees := map[string]Degree{}
	for _, node := range nodes {
		degrees[node] = Degree{}
	}
	for _, edge := range edges {
		src := degrees[edge.Src]
		src.Out++
		degrees[edge.Src] = src
		dst := degrees[edge.Dst]
		dst.In++
		degrees[edge.Dst] = dst
	}
	return degrees
}

// ReachabilityMap computes, per node, the set of nodes reachable from it
// (excluding itself unless it sits on a cycle) via breadth-first search
func ReachabilityMap(nodes []string, edges []Edge) map[string][]string {
	adj, order := adjacency(nodes, edges)

	reach := map[string][]string{}
	for _, start := range order {
		visited := map[string]bool{}
		queue := []string{start}
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			for _, neighbor := range adj[node] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		targets := make([]string, 0, len(visited))
		for node := range visited {
			targets = append(targets, node)
		}
		sort.Strings(targets)
		reach[start] = targets
	}
	return reach
}
