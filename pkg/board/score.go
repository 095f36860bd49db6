package board

// network is one connected component of exits discovered during scoring:
// the squares in it and how many of the twelve exits it touches.
type network struct {
	squares []Square
	exits   uint8
}

type visitKey struct {
	square       Square
	networkIndex int
}

// isExitEdge matches (x, y, direction, connection) against the twelve
// exit-adjacent border cells used by getNetworks' out-of-bounds exit
// counting, mirrored directly from the Rust match arm in Board::get_networks.
func isExitEdge(square Square, d Direction, c Connection) bool {
	x, y := square.X(), square.Y()
	switch {
	case (x == 1 || x == 5) && y == 0 && d == North && c == Road:
		return true
	case x == 3 && y == 0 && d == North && c == Rail:
		return true
	case x == 6 && (y == 1 || y == 5) && d == East && c == Rail:
		return true
	case x == 6 && y == 3 && d == East && c == Road:
		return true
	case (x == 5 || x == 1) && y == 6 && d == South && c == Road:
		return true
	case x == 3 && y == 6 && d == South && c == Rail:
		return true
	case x == 0 && (y == 5 || y == 1) && d == West && c == Rail:
		return true
	case x == 0 && y == 3 && d == West && c == Road:
		return true
	default:
		return false
	}
}

// getNetworks walks the two-network graph starting from each unvisited
// (placement, network index), following matching connections into in-bounds
// occupied neighbors, and tallies how many of the twelve exits each
// resulting component touches.
func (b *Board) getNetworks() []network {
	visited := make(map[visitKey]bool)
	var networks []network

	for _, placement := range b.Placements() {
		for networkIndex := 0; networkIndex < 2; networkIndex++ {
			key := visitKey{placement.Square, networkIndex}
			if visited[key] {
				continue
			}
			if placement.Networks()[networkIndex] == nil {
				continue
			}

			type queued struct {
				placement    Placement
				networkIndex int
			}
			queue := []queued{{placement, networkIndex}}
			var current network

			for len(queue) > 0 {
				item := queue[0]
				queue = queue[1:]

				k := visitKey{item.placement.Square, item.networkIndex}
				if visited[k] {
					continue
				}
				visited[k] = true
				current.squares = append(current.squares, item.placement.Square)

				for _, dc := range item.placement.ConnectionsInNetwork(item.networkIndex) {
					if dc.Connection == None {
						continue
					}
					neighborSquare := item.placement.Square.Neighbor(dc.Direction)
					neighbor := b.get(neighborSquare)
					if neighbor != nil {
						if ni, ok := neighbor.ConnectedNetwork(dc.Direction.Inverse(), dc.Connection); ok {
							nk := visitKey{neighbor.Square, ni}
							if !visited[nk] {
								queue = append(queue, queued{*neighbor, ni})
							}
						}
					} else if isExitEdge(item.placement.Square, dc.Direction, dc.Connection) {
						current.exits++
					}
				}
			}
			networks = append(networks, current)
		}
	}
	return networks
}

// Score computes the board's total score per SPEC_FULL.md §4.B:
// network_score + longest_road + longest_rail + center_tile_count - open_ends.
func (b *Board) Score() int {
	networks := b.getNetworks()

	networkScore := 0
	for _, n := range networks {
		if n.exits == 12 {
			networkScore += 45
		} else if n.exits > 0 {
			networkScore += int(n.exits-1) * 4
		}
	}

	openEnds := 0
	for square, obligations := range b.frontier {
		for _, ob := range obligations {
			if b.get(square.Neighbor(ob.Direction)) != nil {
				openEnds++
			}
		}
	}

	centerTiles := 0
	for x := uint8(2); x <= 4; x++ {
		for y := uint8(2); y <= 4; y++ {
			if b.has(NewSquare(x, y)) {
				centerTiles++
			}
		}
	}

	endNodes := b.getEndNodes()
	rail := len(b.getLongest(Rail, endNodes))
	road := len(b.getLongest(Road, endNodes))

	return networkScore + road + rail + centerTiles - openEnds
}

// getEndNodes finds every square that terminates a longest-path search: one
// with an unsatisfied obligation, one on the outer edge with an outward
// connection, or a transitional tile (SPEC_FULL.md §4.B "End nodes").
func (b *Board) getEndNodes() map[Square]bool {
	endNodes := make(map[Square]bool)

	// An obligation's direction points back at the placed tile that created
	// it, so that tile has an unsatisfied side.
	for from, obligations := range b.frontier {
		for _, ob := range obligations {
			candidate := from.Neighbor(ob.Direction)
			if b.has(candidate) {
				endNodes[candidate] = true
			}
		}
	}

	for _, placement := range b.Placements() {
		square := placement.Square
		if endNodes[square] {
			continue
		}

		isTransitional := isTransitionalPiece(placement.Piece)

		x, y := square.X(), square.Y()
		if isTransitional ||
			(y == 0 && placement.HasSomeConnection(North)) ||
			(x == 6 && placement.HasSomeConnection(East)) ||
			(y == 6 && placement.HasSomeConnection(South)) ||
			(x == 0 && placement.HasSomeConnection(West)) {
			endNodes[square] = true
		}
	}

	return endNodes
}

func isTransitionalPiece(id uint8) bool {
	switch id {
	case 0x08, 0x09, 0x0A, 0x0B, 0x0E, 0x0F:
		return true
	default:
		return false
	}
}

// getLongest returns the longest simple path of connection-type edges
// reachable from any end node, by DFS.
func (b *Board) getLongest(connection Connection, endNodes map[Square]bool) []Square {
	var longest []Square

	for loc := range endNodes {
		place := b.get(loc)
		if place == nil {
			continue
		}
		anyMatching := false
		for _, d := range Directions {
			if place.HasConnection(d, connection) {
				anyMatching = true
				break
			}
		}
		if !anyMatching {
			continue
		}

		visited := make(map[Square]bool)
		next := b.depthFirstFindLongest(loc, connection, visited)
		if len(next) > len(longest) {
			longest = next
		}
	}
	return longest
}

// depthFirstFindLongest explores every unvisited same-type connection from
// node, backtracking across disjoint branches, and returns the longest
// simple path found (node counted included).
func (b *Board) depthFirstFindLongest(node Square, connection Connection, visited map[Square]bool) []Square {
	connected := b.getConnectedOfType(node, connection)
	var unvisited []Square
	for _, n := range connected {
		if !visited[n] {
			unvisited = append(unvisited, n)
		}
	}
	if len(unvisited) == 0 {
		return []Square{node}
	}

	visited[node] = true
	var longest []Square
	for _, n := range unvisited {
		next := b.depthFirstFindLongest(n, connection, visited)
		if len(next) > len(longest) {
			longest = next
		}
	}
	delete(visited, node)

	return append(longest, node)
}

// getConnectedOfType returns the in-bounds occupied neighbors reachable
// from square via a matching (both-sides) connection of the given type.
func (b *Board) getConnectedOfType(square Square, connection Connection) []Square {
	place := b.get(square)
	if place == nil {
		return nil
	}
	var out []Square
	for _, d := range Directions {
		if !place.HasConnection(d, connection) {
			continue
		}
		neighborSquare := square.Neighbor(d)
		neighbor := b.get(neighborSquare)
		if neighbor == nil {
			continue
		}
		if neighbor.HasConnection(d.Inverse(), connection) {
			out = append(out, neighbor.Square)
		}
	}
	return out
}
