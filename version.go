package rota

// Version is the library version. Release builds override it via
// -ldflags "-X github.com/rota-robotics/rota.Version=...".
var Version = "0.4.0-dev"
