package config

const (
	DefaultPath   = "./"
	DefaultCSV    = "./files.cvs"
	DefaultCount  = 16384
	DefaultWidth  = 256
	DefaultHeight = 192
	DefaultFovY   = 30.0
	DefaultAspect = 4.0 / 3.0
	DefaultNear   = 0.1
	DefaultFar    = 100.0
)
