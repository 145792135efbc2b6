package audio

import "mime/multipart"

// UploadPayload represents the multipart form body for uploading a
// recitation. The file itself arrives through FormFiles under the "file" key.
type UploadPayload struct {
	FormFiles map[string]*multipart.FileHeader `form:"-" json:"-"`
	Surah     int                              `form:"surah" validate:"required"`
	Reciter   string                           `form:"reciter" mod:"trim,lcase" default:"afasy"`
}

// ListenQuery represents the query parameters for the playback redirect.
type ListenQuery struct {
	Surah   int    `query:"surah" validate:"required"`
	Reciter string `query:"reciter" mod:"trim,lcase" default:"afasy"`
}

// SourcesQuery represents the query parameters for listing candidates.
type SourcesQuery struct {
	Surah   int    `query:"surah" validate:"required"`
	Reciter string `query:"reciter" mod:"trim,lcase" default:"afasy"`
}

// ListUploadsQuery represents the query parameters for listing uploads.
type ListUploadsQuery struct {
	Limit  int `query:"limit" default:"50"`
	Offset int `query:"offset" default:"0"`
}
