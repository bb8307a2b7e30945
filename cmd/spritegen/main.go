/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// spritegen packs toolbar icon PNGs into a sprite sheet plus manifest.
package main

import (
	"flag"
	"fmt"
	"os"

	applog "inkbar/internal/log"
	"inkbar/internal/sprite"
	"inkbar/internal/version"
)

func main() {
	applog.Init(applog.FromEnv())

	src := flag.String("src", "icons", "directory containing icon PNG files")
	outImage := flag.String("out", "toolbar.png", "output sprite sheet path")
	outManifest := flag.String("manifest", "toolbar.yaml", "output manifest path")
	cell := flag.Int("cell", 24, "icon cell size in pixels")
	showVersion := flag.Bool("version", false, "print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}

	man, err := sprite.Pack(*src, *outImage, *outManifest, *cell)
	if err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
	fmt.Printf("Packed %d icons into %s (%d columns)\n", len(man.Entries), *outImage, man.Columns)
}
