package main

// Required for c-shared builds.
func main() {}
