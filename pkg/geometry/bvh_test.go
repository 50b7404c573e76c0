package geometry

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func randomSpheres(random *rand.Rand, count int) []*Object {
	objects := make([]*Object, count)
	for i := range objects {
		center := core.NewVec3(
			random.Float64()*40-20,
			random.Float64()*40-20,
			random.Float64()*40-20,
		)
		objects[i] = NewObject(NewSphere(center, 0.2+random.Float64()*1.5), nil)
	}
	return objects
}

func randomRay(random *rand.Rand) core.Ray {
	origin := core.NewVec3(random.Float64()*60-30, random.Float64()*60-30, random.Float64()*60-30)
	var dir core.Vec3
	for dir.Norm2() < 1e-6 {
		dir = core.NewVec3(random.Float64()*2-1, random.Float64()*2-1, random.Float64()*2-1)
	}
	return core.NewRay(origin, dir.Normalize())
}

// aimedRay starts at a random point and points at the center of a random
// object, so it hits at least that object
func aimedRay(random *rand.Rand, objects []*Object) core.Ray {
	target := objects[random.Intn(len(objects))].BoundingBox().Center()
	origin := core.NewVec3(random.Float64()*60-30, random.Float64()*60-30, random.Float64()*60-30)
	dir := target.Sub(origin)
	if dir.Norm2() < 1e-12 {
		dir = core.NewVec3(0, 0, 1)
	}
	return core.NewRay(origin, dir.Normalize())
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(42))

	tests := []struct {
		name     string
		count    int
		capacity int
	}{
		{"single object", 1, DefaultLeafCapacity},
		{"one leaf", 4, DefaultLeafCapacity},
		{"small", 17, DefaultLeafCapacity},
		{"large", 500, DefaultLeafCapacity},
		{"capacity one", 100, 1},
		{"capacity eight", 100, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			objects := randomSpheres(random, tt.count)
			bvh := NewBVHWithOptions(objects, BuildOptions{LeafCapacity: tt.capacity})
			list := ObjectList(objects)

			hits := 0
			for i := 0; i < 2000; i++ {
				var ray core.Ray
				if i%2 == 0 {
					ray = aimedRay(random, objects)
				} else {
					ray = randomRay(random)
				}
				bvhHit, bvhOk := bvh.Hit(ray)
				listHit, listOk := list.Hit(ray)

				if bvhOk != listOk {
					t.Fatalf("ray %d: BVH hit=%v, brute force hit=%v", i, bvhOk, listOk)
				}
				if !bvhOk {
					continue
				}
				hits++
				if math.Abs(bvhHit.T-listHit.T) > 1e-9 {
					t.Fatalf("ray %d: BVH t=%f, brute force t=%f", i, bvhHit.T, listHit.T)
				}
				if bvhHit.Object != listHit.Object {
					t.Fatalf("ray %d: BVH and brute force hit different objects", i)
				}
			}
			if hits < 1000 {
				t.Errorf("Expected every aimed ray to hit, got %d hits", hits)
			}
		})
	}
}

func TestBVH_Structure(t *testing.T) {
	random := rand.New(rand.NewSource(7))
	objects := randomSpheres(random, 123)
	bvh := NewBVH(objects)
	nodes := bvh.Nodes()

	if bvh.Root() != len(nodes)-1 {
		t.Errorf("Root should be the last node, got %d of %d", bvh.Root(), len(nodes))
	}

	seen := make([]int, len(objects))
	for i, node := range nodes {
		if node.IsLeaf() {
			if len(node.Objects) > DefaultLeafCapacity {
				t.Errorf("Leaf %d holds %d objects, more than capacity", i, len(node.Objects))
			}
			for _, idx := range node.Objects {
				seen[idx]++
				box := objects[idx].BoundingBox()
				if !node.Box.Contains(box.Min) || !node.Box.Contains(box.Max) {
					t.Errorf("Leaf %d box does not contain object %d", i, idx)
				}
			}
			continue
		}

		// Post-order: children come before their parent
		if node.Left >= i || node.Right >= i {
			t.Errorf("Node %d has children %d/%d that do not precede it", i, node.Left, node.Right)
		}
		for _, child := range []int{node.Left, node.Right} {
			cb := nodes[child].Box
			if !node.Box.Contains(cb.Min) || !node.Box.Contains(cb.Max) {
				t.Errorf("Node %d box does not contain child %d box", i, child)
			}
		}
	}

	for idx, count := range seen {
		if count != 1 {
			t.Errorf("Object %d appears in %d leaves, expected exactly 1", idx, count)
		}
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh := NewBVH(nil)

	nodes := bvh.Nodes()
	if len(nodes) != 1 || !nodes[0].IsLeaf() || len(nodes[0].Objects) != 0 {
		t.Fatalf("Expected a single empty leaf, got %+v", nodes)
	}
	if !bvh.BoundingBox().IsEmpty() {
		t.Error("Empty BVH should have an empty bounding box")
	}

	ray := core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1))
	if _, ok := bvh.Hit(ray); ok {
		t.Error("Empty BVH should never report a hit")
	}
}

func TestBVH_NearestOfOverlappingLeaves(t *testing.T) {
	// Spheres along -Z; the nearest one is inserted last so it lands in a
	// different leaf than the first hits encountered
	var objects []*Object
	for i := 10; i >= 1; i-- {
		objects = append(objects, NewObject(NewSphere(core.NewVec3(0, 0, -float64(i)*3), 1), nil))
	}
	bvh := NewBVHWithOptions(objects, BuildOptions{LeafCapacity: 2})

	hit, ok := bvh.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok {
		t.Fatal("Expected hit")
	}
	if hit.Object != objects[len(objects)-1] {
		t.Error("Expected the nearest sphere to be reported")
	}
	if math.Abs(hit.T-2) > 1e-9 {
		t.Errorf("Expected t=2, got %f", hit.T)
	}
}

func TestBVH_RespectsRayInterval(t *testing.T) {
	objects := []*Object{
		NewObject(NewSphere(core.NewVec3(0, 0, -3), 1), nil),
		NewObject(NewSphere(core.NewVec3(0, 0, -10), 1), nil),
	}
	bvh := NewBVH(objects)
	origin := core.NewVec3(0, 0, 0)
	dir := core.NewVec3(0, 0, -1)

	// Interval starts past the first sphere
	hit, ok := bvh.Hit(core.NewRayInterval(origin, dir, 5, 100))
	if !ok || hit.Object != objects[1] {
		t.Fatalf("Expected far sphere, got ok=%v", ok)
	}

	// Interval ends before either sphere
	if _, ok := bvh.Hit(core.NewRayInterval(origin, dir, 0.001, 1.5)); ok {
		t.Error("Expected no hit inside a short interval")
	}
}

func TestBVH_Stats(t *testing.T) {
	objects := randomSpheres(rand.New(rand.NewSource(3)), 16)

	stats := NewBVHWithOptions(objects, BuildOptions{LeafCapacity: 4}).Stats()

	// 16 objects split evenly: 4 leaves of 4 at depth 2, 3 interior nodes
	if stats.TotalNodes != 7 {
		t.Errorf("Expected 7 nodes, got %d", stats.TotalNodes)
	}
	if stats.LeafNodes != 4 {
		t.Errorf("Expected 4 leaves, got %d", stats.LeafNodes)
	}
	if stats.MaxDepth != 2 || stats.AvgDepth != 2 {
		t.Errorf("Expected max and average depth 2, got %d and %f", stats.MaxDepth, stats.AvgDepth)
	}
	if stats.TotalObjects != 16 {
		t.Errorf("Expected 16 objects, got %d", stats.TotalObjects)
	}
}

func TestObjectList_Nearest(t *testing.T) {
	far := NewObject(NewSphere(core.NewVec3(0, 0, -10), 1), nil)
	near := NewObject(NewSphere(core.NewVec3(0, 0, -3), 1), nil)
	list := ObjectList{far, near}

	hit, ok := list.Hit(core.NewRay(core.NewVec3(0, 0, 0), core.NewVec3(0, 0, -1)))
	if !ok || hit.Object != near {
		t.Fatalf("Expected nearest object, got ok=%v", ok)
	}

	box := list.BoundingBox()
	if !box.Contains(core.NewVec3(0, 0, -11)) || !box.Contains(core.NewVec3(0, 0, -2)) {
		t.Errorf("List bounds %v do not cover both spheres", box)
	}
}
