package version

// Version is overridden at build time:
//
//	-ldflags "-X github.com/nakamaio/create-iota-app/cmd/version.Version=v1.2.3"
var Version = "development"
