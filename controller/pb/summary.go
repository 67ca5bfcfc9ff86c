package pb

import (
	"sort"
	"time"

	proto "github.com/gogo/protobuf/proto"
)

// Summary is the end-of-session record shown on the game over screen and
// kept by the summary stores. It is a protobuf message so stores can encode
// it compactly; times are unix nanoseconds.
type Summary struct {
	ID          string `protobuf:"bytes,1,opt,name=ID,proto3" json:"ID,omitempty"`
	Score       int64  `protobuf:"varint,2,opt,name=Score,proto3" json:"Score,omitempty"`
	Length      int32  `protobuf:"varint,3,opt,name=Length,proto3" json:"Length,omitempty"`
	Turns       int64  `protobuf:"varint,4,opt,name=Turns,proto3" json:"Turns,omitempty"`
	Cause       string `protobuf:"bytes,5,opt,name=Cause,proto3" json:"Cause,omitempty"`
	ControlMode string `protobuf:"bytes,6,opt,name=ControlMode,proto3" json:"ControlMode,omitempty"`
	Width       int32  `protobuf:"varint,7,opt,name=Width,proto3" json:"Width,omitempty"`
	Height      int32  `protobuf:"varint,8,opt,name=Height,proto3" json:"Height,omitempty"`
	StartedAt   int64  `protobuf:"varint,9,opt,name=StartedAt,proto3" json:"StartedAt,omitempty"`
	EndedAt     int64  `protobuf:"varint,10,opt,name=EndedAt,proto3" json:"EndedAt,omitempty"`
}

func (m *Summary) Reset()         { *m = Summary{} }
func (m *Summary) String() string { return proto.CompactTextString(m) }
func (*Summary) ProtoMessage()    {}

func init() {
	proto.RegisterType((*Summary)(nil), "pb.Summary")
}

// Ended returns EndedAt as a time.
func (m *Summary) Ended() time.Time {
	return time.Unix(0, m.EndedAt)
}

// Duration is how long the session ran, wall clock.
func (m *Summary) Duration() time.Duration {
	return time.Duration(m.EndedAt - m.StartedAt)
}

// SortSummaries orders by score, highest first; ties go to the earlier finish
// and then to the ID.
func SortSummaries(summaries []*Summary) {
	sort.Slice(summaries, func(i, j int) bool {
		a, b := summaries[i], summaries[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if a.EndedAt != b.EndedAt {
			return a.EndedAt < b.EndedAt
		}
		return a.ID < b.ID
	})
}
