package execgraphs

// Graph is the raw, non-executable result of ending a stream capture.
//
// It is single-use: instantiate it into an ExecutableGraph (or destroy it
// unused), then destroy it. Package capture always destroys the Graph
// immediately after instantiation, whether instantiation succeeded or not.
type Graph interface {
	// Instantiate converts the recording into a launchable ExecutableGraph.
	// It can be called at most once.
	Instantiate() (ExecutableGraph, error)

	// Destroy releases the recording. Destroying twice is a driver error.
	Destroy() error
}

// ExecutableGraph is the instantiated, repeatedly-launchable form of a Graph.
// It remains valid until destroyed, independently of the Graph it came from.
type ExecutableGraph interface {
	// Launch enqueues one replay of the recorded work onto the stream. It does
	// not wait for completion; synchronize the stream for that.
	Launch(stream Stream) error

	// Destroy releases the executable. Destroying twice is a driver error.
	Destroy() error
}
