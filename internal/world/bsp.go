package world

import "math/rand"

// minLeafSize is the smallest BSP leaf before splitting stops.
const minLeafSize = 10

// bspNode represents a node in the BSP tree.
type bspNode struct {
	x, y          int
	width, height int
	left, right   *bspNode
	room          *Rect
}

// isLeaf returns true if this node has no children.
func (n *bspNode) isLeaf() bool {
	return n.left == nil && n.right == nil
}

// generateBSP creates the layout using binary space partitioning.
func (m *Map) generateBSP(rng *rand.Rand) {
	// Start BSP with the entire map, minus the border, as root
	root := &bspNode{
		x:      1,
		y:      1,
		width:  m.Width - 2,
		height: m.Height - 2,
	}

	m.splitNode(root, rng)
	m.createRooms(root, rng)
	m.connectRooms(root, rng)
}

// splitNode recursively splits a BSP node.
func (m *Map) splitNode(node *bspNode, rng *rand.Rand) {
	// Stop if too small to split
	if node.width < minLeafSize*2 && node.height < minLeafSize*2 {
		return
	}

	var splitHorizontally bool
	if node.width > node.height && node.width >= minLeafSize*2 {
		splitHorizontally = false // left/right
	} else if node.height >= minLeafSize*2 {
		splitHorizontally = true // top/bottom
	} else if node.width >= minLeafSize*2 {
		splitHorizontally = false
	} else {
		return
	}

	size := node.width
	if splitHorizontally {
		size = node.height
	}
	lo, hi := minLeafSize, size-minLeafSize
	if hi <= lo {
		return
	}
	splitPos := lo + rng.Intn(hi-lo+1)

	if splitHorizontally {
		node.left = &bspNode{x: node.x, y: node.y, width: node.width, height: splitPos}
		node.right = &bspNode{x: node.x, y: node.y + splitPos, width: node.width, height: node.height - splitPos}
	} else {
		node.left = &bspNode{x: node.x, y: node.y, width: splitPos, height: node.height}
		node.right = &bspNode{x: node.x + splitPos, y: node.y, width: node.width - splitPos, height: node.height}
	}

	m.splitNode(node.left, rng)
	m.splitNode(node.right, rng)
}

// createRooms creates rooms in leaf nodes of the BSP tree.
func (m *Map) createRooms(node *bspNode, rng *rand.Rand) {
	if node == nil {
		return
	}
	if !node.isLeaf() {
		m.createRooms(node.left, rng)
		m.createRooms(node.right, rng)
		return
	}

	roomWidth := minRoomSize + rng.Intn(max(1, min(maxRoomSize-minRoomSize+1, node.width-minRoomSize+1)))
	roomHeight := minRoomSize + rng.Intn(max(1, min(maxRoomSize-minRoomSize+1, node.height-minRoomSize+1)))

	// Leave at least one wall column and row inside the leaf
	roomWidth = min(roomWidth, node.width-2)
	roomHeight = min(roomHeight, node.height-2)
	if roomWidth < minRoomSize || roomHeight < minRoomSize {
		return
	}

	roomX := node.x - 1 + rng.Intn(node.width-roomWidth)
	roomY := node.y - 1 + rng.Intn(node.height-roomHeight)

	room := NewRect(roomX, roomY, roomWidth, roomHeight)
	node.room = &room
	m.Rooms = append(m.Rooms, room)
	m.applyRoom(room)
}

// connectRooms joins sibling subtrees with corridors, bottom up.
func (m *Map) connectRooms(node *bspNode, rng *rand.Rand) {
	if node == nil || node.isLeaf() {
		return
	}

	m.connectRooms(node.left, rng)
	m.connectRooms(node.right, rng)

	leftRoom := findRoom(node.left)
	rightRoom := findRoom(node.right)
	if leftRoom == nil || rightRoom == nil {
		return
	}

	x1, y1 := leftRoom.Center()
	x2, y2 := rightRoom.Center()
	if rng.Intn(2) == 0 {
		m.applyHorizontalTunnel(x1, x2, y1)
		m.applyVerticalTunnel(y1, y2, x2)
	} else {
		m.applyVerticalTunnel(y1, y2, x1)
		m.applyHorizontalTunnel(x1, x2, y2)
	}
}

// findRoom returns a room from a subtree (any room will do).
func findRoom(node *bspNode) *Rect {
	if node == nil {
		return nil
	}
	if node.room != nil {
		return node.room
	}
	if room := findRoom(node.left); room != nil {
		return room
	}
	return findRoom(node.right)
}
