// Diagnostic tool for inspecting encoded chunk section frames.
package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/robert-malhotra/go-voxel/voxel"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: go run cmd/sectiondump/main.go <section.bin>")
		os.Exit(1)
	}

	filename := os.Args[1]
	f, err := os.Open(filename)
	if err != nil {
		fmt.Printf("ERROR: failed to open file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	s, err := voxel.ReadSection(f)
	if err != nil {
		fmt.Printf("ERROR: failed to read frame: %v\n", err)
		os.Exit(1)
	}

	pos := s.Position()
	fmt.Printf("=== Section (%d, %d, %d) ===\n\n", pos.X, pos.Y, pos.Z)

	if err := s.Decode(); err != nil {
		fmt.Printf("ERROR: decode failed: %v\n", err)
		os.Exit(1)
	}

	dumpSection(s)
}

func dumpSection(s *voxel.Section) {
	typeCounts := make(map[uint16]int)
	var maxBlockLight, maxSkyLight byte
	hasSky := false

	for y := 0; y < voxel.SectionSize; y++ {
		for z := 0; z < voxel.SectionSize; z++ {
			for x := 0; x < voxel.SectionSize; x++ {
				v, err := s.Block(x, y, z)
				if err != nil {
					fmt.Printf("ERROR: lookup (%d,%d,%d): %v\n", x, y, z, err)
					os.Exit(1)
				}
				typeCounts[v.Type]++

				bl, _ := s.BlockLight(x, y, z)
				if bl > maxBlockLight {
					maxBlockLight = bl
				}
				sl, ok, _ := s.SkyLight(x, y, z)
				if ok {
					hasSky = true
					if sl > maxSkyLight {
						maxSkyLight = sl
					}
				}
			}
		}
	}

	fmt.Printf("Distinct block types: %d\n", len(typeCounts))
	fmt.Printf("Non-air voxels: %d / %d\n", voxel.SectionVolume-typeCounts[0], voxel.SectionVolume)
	fmt.Printf("Max block light: 0x%02X\n", maxBlockLight)
	if hasSky {
		fmt.Printf("Max sky light: 0x%02X\n", maxSkyLight)
	} else {
		fmt.Println("Sky light: absent")
	}
	fmt.Println()

	types := make([]int, 0, len(typeCounts))
	for t := range typeCounts {
		types = append(types, int(t))
	}
	sort.Ints(types)
	fmt.Println("Type histogram:")
	for _, t := range types {
		fmt.Printf("  type %5d: %d\n", t, typeCounts[uint16(t)])
	}
}
