package ir

// Version is the protosql release.
const Version = "0.1.0"
