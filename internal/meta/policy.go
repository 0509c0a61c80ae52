package meta

// Policy is the redaction decision for one tag.
type Policy uint8

const (
	// PolicyPassthrough keeps the tag untouched. The default for anything
	// the dictionary has no opinion on.
	PolicyPassthrough Policy = iota
	// PolicyRemove deletes the tag outright.
	PolicyRemove
	// PolicyPreserve keeps the tag because it is needed for correct
	// display or carries harmless capture parameters.
	PolicyPreserve
)

func (p Policy) String() string {
	switch p {
	case PolicyRemove:
		return "remove"
	case PolicyPreserve:
		return "preserve"
	default:
		return "passthrough"
	}
}

// Tags that identify the device, its owner, or carry free-text and vendor
// blobs. Grouped by directory; GPS is not listed because the whole group is
// removed regardless of tag.
var removeTags = map[Group]map[TagID]bool{
	GroupPrimary: {
		TagMake:             true,
		TagModel:            true,
		TagSoftware:         true,
		TagHostComputer:     true,
		TagImageDescription: true,
		TagXPTitle:          true,
		TagXPComment:        true,
		TagXPAuthor:         true,
		TagXPKeywords:       true,
		TagXPSubject:        true,
	},
	GroupExifSub: {
		TagMakerNote:        true,
		TagUserComment:      true,
		TagImageUniqueID:    true,
		TagCameraOwnerName:  true,
		TagBodySerialNumber: true,
		TagLensMake:         true,
		TagLensModel:        true,
		TagLensSerialNumber: true,
	},
}

// Tags that stay because viewers need them, or because they describe the
// exposure rather than the photographer.
var preserveTags = map[Group]map[TagID]bool{
	GroupPrimary: {
		TagImageWidth:       true,
		TagImageLength:      true,
		TagOrientation:      true,
		TagXResolution:      true,
		TagYResolution:      true,
		TagResolutionUnit:   true,
		TagYCbCrPositioning: true,
		TagDateTime:         true,
	},
	GroupExifSub: {
		TagExifVersion:         true,
		TagColorSpace:          true,
		TagPixelXDimension:     true,
		TagPixelYDimension:     true,
		TagDateTimeOriginal:    true,
		TagDateTimeDigitized:   true,
		TagOffsetTime:          true,
		TagOffsetTimeOriginal:  true,
		TagOffsetTimeDigitized: true,
		TagExposureTime:        true,
		TagFNumber:             true,
		TagExposureProgram:     true,
		TagISOSpeedRatings:     true,
		TagShutterSpeedValue:   true,
		TagApertureValue:       true,
		TagExposureBiasValue:   true,
		TagMeteringMode:        true,
		TagFlash:               true,
		TagFocalLength:         true,
		TagFocalLength35mm:     true,
		TagExposureMode:        true,
		TagWhiteBalance:        true,
		TagSceneCaptureType:    true,
		TagDigitalZoomRatio:    true,
		TagContrast:            true,
		TagSaturation:          true,
		TagSharpness:           true,
	},
}

// Classify returns the redaction policy for a tag. It is total: every
// (group, id) pair yields a decision, unknown tags pass through.
func Classify(g Group, id TagID) Policy {
	if g == GroupGps {
		return PolicyRemove
	}
	if removeTags[g][id] {
		return PolicyRemove
	}
	if preserveTags[g][id] {
		return PolicyPreserve
	}
	return PolicyPassthrough
}
