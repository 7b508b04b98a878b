// Package notify delivers run summaries to their outbound channels.
//
// A Sink accepts the read-only Summary of a finished run and owns its own
// formatting and size limits. Two sinks exist:
//
//   - DiscordSink posts the summary as webhook embeds, splitting oversized
//     reports across multiple messages to stay inside Discord's limits.
//   - ArchiveSink uploads the summary as a JSON document to object storage,
//     one object per run.
//
// The Dispatcher fans out to all configured sinks best-effort: it runs under
// its own timeout, detached from the run's cancellation, and sink failures
// are logged but never propagated; notification delivery must not affect
// run correctness.
package notify
