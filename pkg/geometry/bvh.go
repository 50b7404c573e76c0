package geometry

import (
	"sort"

	"github.com/df07/go-pathtracer/pkg/core"
)

// DefaultLeafCapacity is the maximum number of objects stored in a leaf
const DefaultLeafCapacity = 4

// Node is one entry of the flattened hierarchy. Interior nodes reference
// their children by index into BVH.Nodes(); leaves carry object indices.
type Node struct {
	Box     core.BBox
	Left    int   // -1 for leaves
	Right   int   // -1 for leaves
	Objects []int // indices into the object slice, nil for interior nodes
}

// IsLeaf reports whether the node stores objects directly
func (n Node) IsLeaf() bool {
	return n.Left < 0
}

// BuildOptions controls BVH construction
type BuildOptions struct {
	LeafCapacity int
}

// BVH is a bounding volume hierarchy stored as a flat node array in
// post-order: children always precede their parent and the root is last.
// It is immutable after construction and safe for concurrent queries.
type BVH struct {
	nodes   []Node
	objects []*Object
	root    int
}

// NewBVH builds a BVH with the default leaf capacity
func NewBVH(objects []*Object) *BVH {
	return NewBVHWithOptions(objects, BuildOptions{LeafCapacity: DefaultLeafCapacity})
}

// NewBVHWithOptions builds a BVH over objects. The object slice is copied;
// the objects themselves are shared.
func NewBVHWithOptions(objects []*Object, opts BuildOptions) *BVH {
	if opts.LeafCapacity < 1 {
		opts.LeafCapacity = DefaultLeafCapacity
	}

	b := &bvhBuilder{
		objects:  objects,
		capacity: opts.LeafCapacity,
		boxes:    make([]core.BBox, len(objects)),
		centers:  make([]core.Vec3, len(objects)),
	}
	for i, obj := range objects {
		b.boxes[i] = obj.BoundingBox()
		b.centers[i] = b.boxes[i].Center()
	}

	indexes := make([]int, len(objects))
	for i := range indexes {
		indexes[i] = i
	}

	root := b.build(indexes)

	objectsCopy := make([]*Object, len(objects))
	copy(objectsCopy, objects)

	return &BVH{nodes: b.nodes, objects: objectsCopy, root: root}
}

type bvhBuilder struct {
	objects  []*Object
	capacity int
	boxes    []core.BBox
	centers  []core.Vec3
	nodes    []Node
}

// build emits the subtree over indexes and returns the root's position
func (b *bvhBuilder) build(indexes []int) int {
	box := core.EmptyBBox()
	for _, i := range indexes {
		box = box.Union(b.boxes[i])
	}

	if len(indexes) <= b.capacity {
		leafObjects := make([]int, len(indexes))
		copy(leafObjects, indexes)
		b.nodes = append(b.nodes, Node{Box: box, Left: -1, Right: -1, Objects: leafObjects})
		return len(b.nodes) - 1
	}

	// Median split along the longest axis of the node bounds
	axis := box.MaxExtent()
	sort.SliceStable(indexes, func(i, j int) bool {
		return core.Component(b.centers[indexes[i]], axis) < core.Component(b.centers[indexes[j]], axis)
	})

	mid := len(indexes) / 2
	left := b.build(indexes[:mid])
	right := b.build(indexes[mid:])

	b.nodes = append(b.nodes, Node{Box: box, Left: left, Right: right})
	return len(b.nodes) - 1
}

// Hit returns the nearest intersection along the ray
func (bvh *BVH) Hit(ray core.Ray) (Intersection, bool) {
	return bvh.hitNode(bvh.root, ray)
}

func (bvh *BVH) hitNode(index int, ray core.Ray) (Intersection, bool) {
	node := &bvh.nodes[index]
	if !node.Box.Hit(ray) {
		return Intersection{}, false
	}

	if node.IsLeaf() {
		var closest Intersection
		hitAnything := false
		for _, i := range node.Objects {
			if hit, ok := bvh.objects[i].Hit(ray); ok {
				hitAnything = true
				closest = hit
				ray = ray.WithMaxT(hit.T)
			}
		}
		return closest, hitAnything
	}

	closest, hitAnything := bvh.hitNode(node.Left, ray)
	if hitAnything {
		ray = ray.WithMaxT(closest.T)
	}
	if hit, ok := bvh.hitNode(node.Right, ray); ok {
		return hit, true
	}
	return closest, hitAnything
}

// BoundingBox returns the bounds of every object in the hierarchy
func (bvh *BVH) BoundingBox() core.BBox {
	return bvh.nodes[bvh.root].Box
}

// Root returns the index of the root node
func (bvh *BVH) Root() int {
	return bvh.root
}

// Nodes returns the flattened node array
func (bvh *BVH) Nodes() []Node {
	return bvh.nodes
}

// BVHStats describes the shape of a built hierarchy
type BVHStats struct {
	TotalNodes   int
	LeafNodes    int
	MaxDepth     int
	AvgDepth     float64 // average leaf depth
	TotalObjects int
}

// Stats walks the hierarchy and collects structural statistics
func (bvh *BVH) Stats() BVHStats {
	stats := BVHStats{}
	bvh.collectStats(bvh.root, 0, &stats)

	if stats.LeafNodes > 0 {
		stats.AvgDepth = stats.AvgDepth / float64(stats.LeafNodes)
	}

	return stats
}

func (bvh *BVH) collectStats(index int, depth int, stats *BVHStats) {
	node := bvh.nodes[index]
	stats.TotalNodes++

	if depth > stats.MaxDepth {
		stats.MaxDepth = depth
	}

	if node.IsLeaf() {
		stats.LeafNodes++
		stats.TotalObjects += len(node.Objects)
		stats.AvgDepth += float64(depth)
		return
	}

	bvh.collectStats(node.Left, depth+1, stats)
	bvh.collectStats(node.Right, depth+1, stats)
}
