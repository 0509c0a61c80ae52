package meta

import "fmt"

// Tag identifiers, grouped by the directory they live in. Hex values follow
// the TIFF 6.0 and EXIF 2.3 tables.

// Primary (IFD0) tags.
const (
	TagImageWidth            TagID = 0x0100
	TagImageLength           TagID = 0x0101
	TagBitsPerSample         TagID = 0x0102
	TagCompression           TagID = 0x0103
	TagPhotometric           TagID = 0x0106
	TagImageDescription      TagID = 0x010E
	TagMake                  TagID = 0x010F
	TagModel                 TagID = 0x0110
	TagStripOffsets          TagID = 0x0111
	TagOrientation           TagID = 0x0112
	TagSamplesPerPixel       TagID = 0x0115
	TagRowsPerStrip          TagID = 0x0116
	TagStripByteCounts       TagID = 0x0117
	TagXResolution           TagID = 0x011A
	TagYResolution           TagID = 0x011B
	TagPlanarConfiguration   TagID = 0x011C
	TagResolutionUnit        TagID = 0x0128
	TagTransferFunction      TagID = 0x012D
	TagSoftware              TagID = 0x0131
	TagDateTime              TagID = 0x0132
	TagArtist                TagID = 0x013B
	TagHostComputer          TagID = 0x013C
	TagWhitePoint            TagID = 0x013E
	TagPrimaryChromaticities TagID = 0x013F
	TagJPEGInterchangeFormat TagID = 0x0201
	TagJPEGInterchangeLength TagID = 0x0202
	TagYCbCrCoefficients     TagID = 0x0211
	TagYCbCrSubSampling      TagID = 0x0212
	TagYCbCrPositioning      TagID = 0x0213
	TagReferenceBlackWhite   TagID = 0x0214
	TagCopyright             TagID = 0x8298
	TagXPTitle               TagID = 0x9C9B
	TagXPComment             TagID = 0x9C9C
	TagXPAuthor              TagID = 0x9C9D
	TagXPKeywords            TagID = 0x9C9E
	TagXPSubject             TagID = 0x9C9F
)

// Structural pointer tags. They locate sub-directories inside the byte
// stream; the codec consumes them on decode and regenerates them on encode,
// so they never appear inside a Document.
const (
	TagExifIFDPointer    TagID = 0x8769 // in Primary
	TagGPSIFDPointer     TagID = 0x8825 // in Primary
	TagInteropIFDPointer TagID = 0xA005 // in ExifSub
)

// Exif sub-IFD tags.
const (
	TagExposureTime          TagID = 0x829A
	TagFNumber               TagID = 0x829D
	TagExposureProgram       TagID = 0x8822
	TagSpectralSensitivity   TagID = 0x8824
	TagISOSpeedRatings       TagID = 0x8827
	TagSensitivityType       TagID = 0x8830
	TagExifVersion           TagID = 0x9000
	TagDateTimeOriginal      TagID = 0x9003
	TagDateTimeDigitized     TagID = 0x9004
	TagOffsetTime            TagID = 0x9010
	TagOffsetTimeOriginal    TagID = 0x9011
	TagOffsetTimeDigitized   TagID = 0x9012
	TagComponentsConfig      TagID = 0x9101
	TagCompressedBitsPerPx   TagID = 0x9102
	TagShutterSpeedValue     TagID = 0x9201
	TagApertureValue         TagID = 0x9202
	TagBrightnessValue       TagID = 0x9203
	TagExposureBiasValue     TagID = 0x9204
	TagMaxApertureValue      TagID = 0x9205
	TagSubjectDistance       TagID = 0x9206
	TagMeteringMode          TagID = 0x9207
	TagLightSource           TagID = 0x9208
	TagFlash                 TagID = 0x9209
	TagFocalLength           TagID = 0x920A
	TagSubjectArea           TagID = 0x9214
	TagMakerNote             TagID = 0x927C
	TagUserComment           TagID = 0x9286
	TagSubsecTime            TagID = 0x9290
	TagSubsecTimeOriginal    TagID = 0x9291
	TagSubsecTimeDigitized   TagID = 0x9292
	TagFlashpixVersion       TagID = 0xA000
	TagColorSpace            TagID = 0xA001
	TagPixelXDimension       TagID = 0xA002
	TagPixelYDimension       TagID = 0xA003
	TagRelatedSoundFile      TagID = 0xA004
	TagFocalPlaneXResolution TagID = 0xA20E
	TagFocalPlaneYResolution TagID = 0xA20F
	TagFocalPlaneResUnit     TagID = 0xA210
	TagExposureIndex         TagID = 0xA215
	TagSensingMethod         TagID = 0xA217
	TagFileSource            TagID = 0xA300
	TagSceneType             TagID = 0xA301
	TagCFAPattern            TagID = 0xA302
	TagCustomRendered        TagID = 0xA401
	TagExposureMode          TagID = 0xA402
	TagWhiteBalance          TagID = 0xA403
	TagDigitalZoomRatio      TagID = 0xA404
	TagFocalLength35mm       TagID = 0xA405
	TagSceneCaptureType      TagID = 0xA406
	TagGainControl           TagID = 0xA407
	TagContrast              TagID = 0xA408
	TagSaturation            TagID = 0xA409
	TagSharpness             TagID = 0xA40A
	TagSubjectDistanceRange  TagID = 0xA40C
	TagImageUniqueID         TagID = 0xA420
	TagCameraOwnerName       TagID = 0xA430
	TagBodySerialNumber      TagID = 0xA431
	TagLensSpecification     TagID = 0xA432
	TagLensMake              TagID = 0xA433
	TagLensModel             TagID = 0xA434
	TagLensSerialNumber      TagID = 0xA435
)

// GPS tags. The group is wiped wholesale, so only the ids that show up in
// fixtures and diagnostics are named here.
const (
	TagGPSVersionID     TagID = 0x0000
	TagGPSLatitudeRef   TagID = 0x0001
	TagGPSLatitude      TagID = 0x0002
	TagGPSLongitudeRef  TagID = 0x0003
	TagGPSLongitude     TagID = 0x0004
	TagGPSAltitudeRef   TagID = 0x0005
	TagGPSAltitude      TagID = 0x0006
	TagGPSTimeStamp     TagID = 0x0007
	TagGPSProcessMethod TagID = 0x001B
	TagGPSDateStamp     TagID = 0x001D
)

// Interoperability tags.
const (
	TagInteropIndex   TagID = 0x0001
	TagInteropVersion TagID = 0x0002
)

var primaryNames = map[TagID]string{
	TagImageWidth:            "ImageWidth",
	TagImageLength:           "ImageLength",
	TagBitsPerSample:         "BitsPerSample",
	TagCompression:           "Compression",
	TagPhotometric:           "PhotometricInterpretation",
	TagImageDescription:      "ImageDescription",
	TagMake:                  "Make",
	TagModel:                 "Model",
	TagStripOffsets:          "StripOffsets",
	TagOrientation:           "Orientation",
	TagSamplesPerPixel:       "SamplesPerPixel",
	TagRowsPerStrip:          "RowsPerStrip",
	TagStripByteCounts:       "StripByteCounts",
	TagXResolution:           "XResolution",
	TagYResolution:           "YResolution",
	TagPlanarConfiguration:   "PlanarConfiguration",
	TagResolutionUnit:        "ResolutionUnit",
	TagTransferFunction:      "TransferFunction",
	TagSoftware:              "Software",
	TagDateTime:              "DateTime",
	TagArtist:                "Artist",
	TagHostComputer:          "HostComputer",
	TagWhitePoint:            "WhitePoint",
	TagPrimaryChromaticities: "PrimaryChromaticities",
	TagJPEGInterchangeFormat: "JPEGInterchangeFormat",
	TagJPEGInterchangeLength: "JPEGInterchangeFormatLength",
	TagYCbCrCoefficients:     "YCbCrCoefficients",
	TagYCbCrSubSampling:      "YCbCrSubSampling",
	TagYCbCrPositioning:      "YCbCrPositioning",
	TagReferenceBlackWhite:   "ReferenceBlackWhite",
	TagCopyright:             "Copyright",
	TagXPTitle:               "XPTitle",
	TagXPComment:             "XPComment",
	TagXPAuthor:              "XPAuthor",
	TagXPKeywords:            "XPKeywords",
	TagXPSubject:             "XPSubject",
}

var exifSubNames = map[TagID]string{
	TagExposureTime:          "ExposureTime",
	TagFNumber:               "FNumber",
	TagExposureProgram:       "ExposureProgram",
	TagSpectralSensitivity:   "SpectralSensitivity",
	TagISOSpeedRatings:       "ISOSpeedRatings",
	TagSensitivityType:       "SensitivityType",
	TagExifVersion:           "ExifVersion",
	TagDateTimeOriginal:      "DateTimeOriginal",
	TagDateTimeDigitized:     "DateTimeDigitized",
	TagOffsetTime:            "OffsetTime",
	TagOffsetTimeOriginal:    "OffsetTimeOriginal",
	TagOffsetTimeDigitized:   "OffsetTimeDigitized",
	TagComponentsConfig:      "ComponentsConfiguration",
	TagCompressedBitsPerPx:   "CompressedBitsPerPixel",
	TagShutterSpeedValue:     "ShutterSpeedValue",
	TagApertureValue:         "ApertureValue",
	TagBrightnessValue:       "BrightnessValue",
	TagExposureBiasValue:     "ExposureBiasValue",
	TagMaxApertureValue:      "MaxApertureValue",
	TagSubjectDistance:       "SubjectDistance",
	TagMeteringMode:          "MeteringMode",
	TagLightSource:           "LightSource",
	TagFlash:                 "Flash",
	TagFocalLength:           "FocalLength",
	TagSubjectArea:           "SubjectArea",
	TagMakerNote:             "MakerNote",
	TagUserComment:           "UserComment",
	TagSubsecTime:            "SubsecTime",
	TagSubsecTimeOriginal:    "SubsecTimeOriginal",
	TagSubsecTimeDigitized:   "SubsecTimeDigitized",
	TagFlashpixVersion:       "FlashpixVersion",
	TagColorSpace:            "ColorSpace",
	TagPixelXDimension:       "PixelXDimension",
	TagPixelYDimension:       "PixelYDimension",
	TagRelatedSoundFile:      "RelatedSoundFile",
	TagFocalPlaneXResolution: "FocalPlaneXResolution",
	TagFocalPlaneYResolution: "FocalPlaneYResolution",
	TagFocalPlaneResUnit:     "FocalPlaneResolutionUnit",
	TagExposureIndex:         "ExposureIndex",
	TagSensingMethod:         "SensingMethod",
	TagFileSource:            "FileSource",
	TagSceneType:             "SceneType",
	TagCFAPattern:            "CFAPattern",
	TagCustomRendered:        "CustomRendered",
	TagExposureMode:          "ExposureMode",
	TagWhiteBalance:          "WhiteBalance",
	TagDigitalZoomRatio:      "DigitalZoomRatio",
	TagFocalLength35mm:       "FocalLengthIn35mmFilm",
	TagSceneCaptureType:      "SceneCaptureType",
	TagGainControl:           "GainControl",
	TagContrast:              "Contrast",
	TagSaturation:            "Saturation",
	TagSharpness:             "Sharpness",
	TagSubjectDistanceRange:  "SubjectDistanceRange",
	TagImageUniqueID:         "ImageUniqueID",
	TagCameraOwnerName:       "CameraOwnerName",
	TagBodySerialNumber:      "BodySerialNumber",
	TagLensSpecification:     "LensSpecification",
	TagLensMake:              "LensMake",
	TagLensModel:             "LensModel",
	TagLensSerialNumber:      "LensSerialNumber",
}

var gpsNames = map[TagID]string{
	TagGPSVersionID:     "GPSVersionID",
	TagGPSLatitudeRef:   "GPSLatitudeRef",
	TagGPSLatitude:      "GPSLatitude",
	TagGPSLongitudeRef:  "GPSLongitudeRef",
	TagGPSLongitude:     "GPSLongitude",
	TagGPSAltitudeRef:   "GPSAltitudeRef",
	TagGPSAltitude:      "GPSAltitude",
	TagGPSTimeStamp:     "GPSTimeStamp",
	TagGPSProcessMethod: "GPSProcessingMethod",
	TagGPSDateStamp:     "GPSDateStamp",
}

var interopNames = map[TagID]string{
	TagInteropIndex:   "InteroperabilityIndex",
	TagInteropVersion: "InteroperabilityVersion",
}

func names(g Group) map[TagID]string {
	switch g {
	case GroupPrimary, GroupThumbnail:
		// IFD1 reuses the TIFF tag set of IFD0.
		return primaryNames
	case GroupExifSub:
		return exifSubNames
	case GroupGps:
		return gpsNames
	case GroupInterop:
		return interopNames
	default:
		return nil
	}
}

// TagName returns the semantic name of a tag, or its hex form when the
// dictionary does not list it.
func TagName(g Group, id TagID) string {
	if n, ok := names(g)[id]; ok {
		return n
	}
	return fmt.Sprintf("0x%04X", uint16(id))
}

// QualifiedName renders "Group/Name", the form used in redaction reports.
func QualifiedName(g Group, id TagID) string {
	return g.String() + "/" + TagName(g, id)
}
