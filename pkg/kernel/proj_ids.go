package kernel

type ChunkID string

func NewChunkID(id string) ChunkID { return ChunkID(id) }
func (c ChunkID) String() string    { return string(c) }
func (c ChunkID) IsEmpty() bool     { return string(c) == "" }

