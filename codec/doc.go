// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package codec converts binary segmentation masks to one-hot class
// tensors and network predictions back to masks.
//
// # Basic Usage
//
//	import (
//	    "github.com/born-ml/segkit/backend/cpu"
//	    "github.com/born-ml/segkit/codec"
//	)
//
//	func main() {
//	    c, err := codec.New(codec.DefaultSettings(), cpu.New())
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    onehot, err := c.Encode(mask, codec.Spatial)     // (N, H, W, 1) → (N, H, W, 2)
//	    back, err := c.Decode(pred, codec.Spatial, 0.5)  // (N, H, W, 2) → (N, H, W, 1)
//	}
//
// # Layouts
//
//   - Spatial: one-hot and predictions are (N, H, W, C)
//   - Flattened: one-hot and predictions are (N, H×W, C)
//
// Decoding a flattened prediction restores (H, W) from Settings.
//
// # Grids
//
// Compose, Gallery and Group lay a batch of masks out as a single image
// for inspection.
package codec
