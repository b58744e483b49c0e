// Package dataset persists image and mask batches in the .sgkd tensor store
// and converts directories of images into it.
//
// The .sgkd format is a small checksummed container for named tensors:
//
//	Format Structure:
//	  [64 bytes: fixed header]
//	    0x00-0x03  Magic "SGKD"
//	    0x04-0x07  Version (uint32 LE)
//	    0x08-0x0B  Flags (uint32 LE)
//	    0x0C-0x0F  Reserved
//	    0x10-0x17  Header size (uint64 LE)
//	    0x18-0x1F  Data size (uint64 LE)
//	    0x20-0x3F  SHA-256 of the data section
//	  [Header: JSON metadata]
//	  [Padding to a 64-byte boundary]
//	  [Tensor data: raw row-major bytes, in header order]
//
// Example usage:
//
//	// Convert a directory of ground-truth masks
//	conv := dataset.NewConverter(c)
//	path, err := conv.Convert(ctx, "data/train/masks", dataset.ConvertOptions{IsMask: true})
//
//	// Load it back for training
//	masks, err := dataset.LoadGroundTruths(path, dataset.DefaultKey, backend)
package dataset
