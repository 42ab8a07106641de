package linkpreview

import (
	"encoding/json"
	"net/url"
)

// ContentType is the classification of a page's primary content as declared
// by og:type. The zero value is not a member; use ParseContentType.
type ContentType string

// ContentType members.
const (
	ContentTypeMusic             ContentType = "music"
	ContentTypeMusicSong         ContentType = "music.song"
	ContentTypeMusicPlaylist     ContentType = "music.playlist"
	ContentTypeMusicAlbum        ContentType = "music.album"
	ContentTypeMusicRadioStation ContentType = "music.radio_station"

	ContentTypeVideoMovie   ContentType = "video.movie"
	ContentTypeVideoEpisode ContentType = "video.episode"
	ContentTypeVideoTVShow  ContentType = "video.tv_show"
	ContentTypeVideo        ContentType = "video"
	ContentTypeArticle      ContentType = "article"
	ContentTypeBook         ContentType = "book"
	ContentTypeProfile      ContentType = "profile"
	ContentTypeWebsite      ContentType = "website"

	ContentTypeFileImage    ContentType = "file.image"
	ContentTypeFileVideo    ContentType = "file.video"
	ContentTypeFileAudio    ContentType = "file.audio"
	ContentTypeFileDocument ContentType = "file.document"
	ContentTypeFileArchive  ContentType = "file.archive"
	ContentTypeFileOther    ContentType = "file.other"
)

var contentTypes = []ContentType{
	ContentTypeMusic,
	ContentTypeMusicSong,
	ContentTypeMusicPlaylist,
	ContentTypeMusicAlbum,
	ContentTypeMusicRadioStation,
	ContentTypeVideoMovie,
	ContentTypeVideoEpisode,
	ContentTypeVideoTVShow,
	ContentTypeVideo,
	ContentTypeArticle,
	ContentTypeBook,
	ContentTypeProfile,
	ContentTypeWebsite,
	ContentTypeFileImage,
	ContentTypeFileVideo,
	ContentTypeFileAudio,
	ContentTypeFileDocument,
	ContentTypeFileArchive,
	ContentTypeFileOther,
}

var contentTypeByName = func() map[string]ContentType {
	m := make(map[string]ContentType, len(contentTypes))
	for _, ct := range contentTypes {
		m[string(ct)] = ct
	}
	return m
}()

// ContentTypes returns all ContentType members in declaration order.
func ContentTypes() []ContentType {
	out := make([]ContentType, len(contentTypes))
	copy(out, contentTypes)
	return out
}

// ParseContentType maps a raw og:type value to a ContentType.
// Matching is exact and case-sensitive; anything else is ContentTypeWebsite.
func ParseContentType(raw string) ContentType {
	if ct, ok := contentTypeByName[raw]; ok {
		return ct
	}
	return ContentTypeWebsite
}

// Valid reports whether ct is a member of the enumeration.
func (ct ContentType) Valid() bool {
	_, ok := contentTypeByName[string(ct)]
	return ok
}

// ImageSize holds the declared pixel dimensions of the preview image.
type ImageSize struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Metadata is the preview information extracted from a page head.
// Nil pointer fields mean the value was absent from the page.
type Metadata struct {
	Title       *string
	Type        ContentType
	Description *string
	ImageURL    *url.URL
	ImageSize   *ImageSize
}

// metadataJSON is the JSON form of Metadata. The image URL is a string.
type metadataJSON struct {
	Title       *string     `json:"title"`
	Type        ContentType `json:"type"`
	Description *string     `json:"description"`
	ImageURL    *string     `json:"imageUrl"`
	ImageSize   *ImageSize  `json:"imageSize"`
}

// MarshalJSON implements json.Marshaler. Absent fields encode as null.
func (m Metadata) MarshalJSON() ([]byte, error) {
	v := metadataJSON{
		Title:       m.Title,
		Type:        m.Type,
		Description: m.Description,
		ImageSize:   m.ImageSize,
	}
	if m.ImageURL != nil {
		s := m.ImageURL.String()
		v.ImageURL = &s
	}
	return json.Marshal(v)
}

// UnmarshalJSON implements json.Unmarshaler. A missing or unknown type
// decodes as ContentTypeWebsite and an invalid image URL as absent.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var v metadataJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*m = Metadata{
		Title:       v.Title,
		Type:        ParseContentType(string(v.Type)),
		Description: v.Description,
		ImageSize:   v.ImageSize,
	}
	if v.ImageURL != nil {
		m.ImageURL = ParseImageURL(*v.ImageURL)
	}
	return nil
}
