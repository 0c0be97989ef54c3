package domain

// Upload is a stored image. Path is the public URL path.
type Upload struct {
	Filename string
	Path     string
	Size     int64
}
