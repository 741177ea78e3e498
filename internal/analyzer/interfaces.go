package analyzer

// MetadataExtractor decodes raw image bytes and extracts metadata
type MetadataExtractor interface {
	// Extract decodes the image and returns its metadata. It fails with an
	// unsupported_format error when the bytes are not a decodable image and
	// with a corrupt_image error when the header decodes but the pixel data
	// cannot be read.
	Extract(data []byte) (*ImageMetadata, error)
}
