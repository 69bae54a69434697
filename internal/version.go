package internal

// Version is the current release of slangify
const Version = "0.4.0"
