package version

// Version of the sqm-combine tool.
const Version = "1.0.0"
