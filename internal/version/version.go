package version

const (
	AppName = "Botloft"
	Version = "0.2.1"
)
