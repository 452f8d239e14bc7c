// Command bvhterm is a terminal console for querying a spatial index,
// grounded on the teacher's raw-keyboard input loop (SilentInputManager
// in win_input.go): keyboard.Open/GetKey/Close instead of a line reader,
// so the console can read single-key commands immediately instead of
// waiting on Enter.
package main

import (
	"flag"
	"fmt"
	"math"

	"github.com/eiannone/keyboard"

	"github.com/mirstar13/spatialbvh/bvh"
	"github.com/mirstar13/spatialbvh/facade"
	"github.com/mirstar13/spatialbvh/vecmath"
)

// gridCollider is one cell of the procedural demo grid.
type gridCollider struct {
	bounds bvh.AABB
	label  string
}

func (g *gridCollider) WorldBounds() bvh.AABB { return g.bounds }
func (g *gridCollider) IsEnabled() bool       { return true }

func main() {
	gridSize := flag.Int("grid", 8, "side length of the procedural demo grid (grid^3 colliders)")
	spacing := flag.Float64("spacing", 4.0, "distance between adjacent grid cell centers")
	step := flag.Float64("step", 2.0, "cursor movement distance per key press")
	flag.Parse()

	f := facade.New()
	buildGrid(f, *gridSize, *spacing)

	n := *gridSize
	fmt.Printf("populated %d colliders on a %dx%dx%d grid (spacing %.1f)\n", n*n*n, n, n, n, *spacing)
	printHelp()

	if err := keyboard.Open(); err != nil {
		fmt.Println("error: could not open keyboard input:", err)
		fmt.Println("falling back to one non-interactive round of nearest, range and raycast queries at the grid center")
		runOnce(f)
		return
	}
	defer keyboard.Close()

	cursor := vecmath.Vec3{}
	for {
		char, key, err := keyboard.GetKey()
		if err != nil {
			continue
		}

		switch {
		case key == keyboard.KeyEsc || char == 'x' || char == 'X':
			fmt.Println("bye")
			return
		case char == 'w' || char == 'W':
			cursor.Z += *step
		case char == 's' || char == 'S':
			cursor.Z -= *step
		case char == 'a' || char == 'A':
			cursor.X -= *step
		case char == 'd' || char == 'D':
			cursor.X += *step
		case char == 'e' || char == 'E':
			cursor.Y += *step
		case char == 'q' || char == 'Q':
			cursor.Y -= *step
		case char == 'n' || char == 'N':
			runFindNearest(f, cursor)
			continue
		case char == 'g' || char == 'G':
			runQueryRange(f, cursor, *spacing)
			continue
		case char == 'c' || char == 'C':
			runRaycast(f, cursor)
			continue
		case char == 'h' || char == 'H':
			printHelp()
			continue
		default:
			continue
		}
		fmt.Printf("cursor -> (%.1f, %.1f, %.1f)\n", cursor.X, cursor.Y, cursor.Z)
	}
}

func buildGrid(f *facade.Facade, n int, spacing float64) {
	origin := -float64(n-1) * spacing / 2
	half := spacing * 0.35
	for ix := 0; ix < n; ix++ {
		for iy := 0; iy < n; iy++ {
			for iz := 0; iz < n; iz++ {
				center := vecmath.Vec3{
					X: origin + float64(ix)*spacing,
					Y: origin + float64(iy)*spacing,
					Z: origin + float64(iz)*spacing,
				}
				bounds := bvh.NewAABB(
					vecmath.Vec3{X: center.X - half, Y: center.Y - half, Z: center.Z - half},
					vecmath.Vec3{X: center.X + half, Y: center.Y + half, Z: center.Z + half},
				)
				f.Register(&gridCollider{bounds: bounds, label: fmt.Sprintf("cell(%d,%d,%d)", ix, iy, iz)})
			}
		}
	}
}

func printHelp() {
	fmt.Println("move: w/a/s/d (X/Z), q/e (Y down/up)   queries: n=find_nearest  g=query_range  c=raycast(+X)   h=help  x/Esc=quit")
}

func runFindNearest(f *facade.Facade, cursor vecmath.Vec3) {
	result, ok := f.FindNearest(cursor, 0)
	if !ok {
		fmt.Println("find_nearest: no colliders registered")
		return
	}
	label := labelOf(result.Payload)
	fmt.Printf("find_nearest(%.1f,%.1f,%.1f) -> %s at %v\n", cursor.X, cursor.Y, cursor.Z, label, result.Bounds)
}

func runQueryRange(f *facade.Facade, cursor vecmath.Vec3, spacing float64) {
	half := spacing * 1.5
	box := bvh.NewAABB(
		vecmath.Vec3{X: cursor.X - half, Y: cursor.Y - half, Z: cursor.Z - half},
		vecmath.Vec3{X: cursor.X + half, Y: cursor.Y + half, Z: cursor.Z + half},
	)
	results := f.QueryRange(box)
	fmt.Printf("query_range around (%.1f,%.1f,%.1f) -> %d collider(s)\n", cursor.X, cursor.Y, cursor.Z, len(results))
	for i, r := range results {
		if i >= 10 {
			fmt.Printf("  ... and %d more\n", len(results)-10)
			break
		}
		fmt.Printf("  %s at %v\n", labelOf(r.Payload), r.Bounds)
	}
}

func runRaycast(f *facade.Facade, cursor vecmath.Vec3) {
	ray := bvh.NewRay(cursor, vecmath.Vec3{X: 1, Y: 0, Z: 0})
	hit, ok := f.RaycastFirst(ray, math.Inf(1))
	if !ok {
		fmt.Println("raycast: no hit along +X")
		return
	}
	fmt.Printf("raycast(+X) from (%.1f,%.1f,%.1f) -> %s at distance %.2f\n", cursor.X, cursor.Y, cursor.Z, labelOf(hit.Payload), hit.Distance)
}

func labelOf(payload any) string {
	if g, ok := payload.(*gridCollider); ok {
		return g.label
	}
	return "<collider>"
}

// runOnce is the fallback path when no TTY is available for raw keyboard
// input (e.g. running under a test harness or piped stdin).
func runOnce(f *facade.Facade) {
	runFindNearest(f, vecmath.Vec3{})
	runQueryRange(f, vecmath.Vec3{}, 4.0)
	runRaycast(f, vecmath.Vec3{})
}
