// Package storage provides the object-storage client (S3/Minio) used by the
// report archive notification sink.
//
// The Client interface is narrow (bucket existence, bucket creation and
// object upload are all the archive needs) so tests can swap in the mock
// from the mocks subpackage.
package storage
