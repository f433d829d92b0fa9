package api

// GraphFile is one source file of a graph version.
type GraphFile struct {
	Path string `json:"path"`
	Code string `json:"code"`
}

// CreateRequest is the body of a create call.
type CreateRequest struct {
	Name  string `json:"name"`
	Chain uint64 `json:"chain"`
}

// CreateResponse describes a newly created graph.
type CreateResponse struct {
	ID        string
	VersionID string
	Sources   []GraphFile
}

// ForkRequest is the body of a fork call. A nil Name lets the service pick one.
type ForkRequest struct {
	Name *string `json:"name"`
}

// ForkResponse describes the forked graph.
type ForkResponse struct {
	ID        string
	VersionID string
	Sources   []GraphFile
}

// CodegenRequest carries the schema and event declarations of a graph.
type CodegenRequest struct {
	SchemaCode string `json:"schemaCode"`
	EventsCode string `json:"eventsCode"`
}

// CompileRequest carries the indexer source of a graph.
type CompileRequest struct {
	IndexerCode string `json:"indexerCode"`
}

// Version is a graph version returned by codegen and compile.
type Version struct {
	Sources []GraphFile `json:"sources"`
}

// CodegenResponse is the result of a codegen call.
type CodegenResponse struct {
	Err     *ErrorDetails `json:"err"`
	Version *Version      `json:"version"`
}

// CompileResponse is the result of a compile call.
type CompileResponse struct {
	Err     *ErrorDetails `json:"err"`
	Version *Version      `json:"version"`
}

// DeployResponse is the result of a deploy call.
type DeployResponse struct {
	Err *ErrorDetails `json:"err"`
	OK  *bool         `json:"ok"`
}

// Graph is a graph summary as listed by the service.
type Graph struct {
	LatestVersionID string  `json:"latestVersionId"`
	Name            string  `json:"name"`
	Description     *string `json:"description"`
	Chain           uint64  `json:"chain"`
	CreatedAt       string  `json:"createdAt"`
}

// ListResponse is the result of a list call.
type ListResponse struct {
	Err    *ErrorDetails `json:"err"`
	Graphs []Graph       `json:"graphs"`
}

type graphDetailsResponse struct {
	Graph Graph `json:"graph"`
}

type createResponseWire struct {
	OK        bool        `json:"ok"`
	ID        *string     `json:"id"`
	VersionID *string     `json:"versionId"`
	Sources   []GraphFile `json:"sources"`
}

type forkResponseWire struct {
	OK                  bool        `json:"ok"`
	GhostGraphID        *string     `json:"ghostGraphId"`
	GhostGraphVersionID *string     `json:"ghostGraphVersionId"`
	Sources             []GraphFile `json:"sources"`
}

type deleteResponseWire struct {
	OK bool `json:"ok"`
}
