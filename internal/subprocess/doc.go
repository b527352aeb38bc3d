// Package subprocess provides the pipes and process handle behind one engine call.
//
// A Pipe is a unidirectional OS pipe whose Endpoints close idempotently.
// Parent-retained ends are marked non-inheritable; child-facing ends are handed
// to exec.Cmd and closed in the parent right after the spawn. Endpoint reads
// never block: ReadAvailableAppend peeks the pending byte count (FIONREAD on
// unix, PeekNamedPipe on windows) and reads only when something is there.
//
// EngineProcess wraps the spawned child. Release kills a still-running child
// and reaps it, so no process outlives the call that started it.
package subprocess
