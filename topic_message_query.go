package ledgersdk

import (
	"context"
	"io"

	"google.golang.org/grpc"

	"github.com/withObsrvr/ledger-sdk/internal/wire"
)

// TopicMessage is one message delivered by a TopicMessageQuery
// subscription.
type TopicMessage struct {
	ConsensusTimestamp Timestamp
	Contents           []byte
	RunningHash        []byte
	SequenceNumber     uint64
	ChunkTotal         int
	ChunkNumber        int
}

// TopicMessageQuery subscribes to a consensus topic's message stream
// against the mirror plane (SPEC_FULL.md §4.E). Unlike the unary
// queries it does not go through Query/executeWithRetry: mirror nodes
// are not subject to the same node-health/backoff bookkeeping as
// consensus nodes, and the call is a long-lived server stream rather
// than a single request/response.
type TopicMessageQuery struct {
	topicID   TopicID
	startTime *Timestamp
	endTime   *Timestamp
	limit     uint64
}

// NewTopicMessageQuery returns a new, empty topic message subscription.
func NewTopicMessageQuery() *TopicMessageQuery {
	return &TopicMessageQuery{}
}

// SetTopicID sets the topic to subscribe to.
func (q *TopicMessageQuery) SetTopicID(topicID TopicID) *TopicMessageQuery {
	q.topicID = topicID
	return q
}

// SetStartTime resumes the subscription from (and including) this
// consensus timestamp.
func (q *TopicMessageQuery) SetStartTime(t Timestamp) *TopicMessageQuery {
	q.startTime = &t
	return q
}

// SetEndTime stops the subscription once a message at or after this
// consensus timestamp would be delivered.
func (q *TopicMessageQuery) SetEndTime(t Timestamp) *TopicMessageQuery {
	q.endTime = &t
	return q
}

// SetLimit stops the subscription after this many messages. Zero (the
// default) means unbounded.
func (q *TopicMessageQuery) SetLimit(limit uint64) *TopicMessageQuery {
	q.limit = limit
	return q
}

func (q *TopicMessageQuery) encodeRequest() []byte {
	w := wire.NewWriter()
	w.WriteMessage(1, func(t *wire.Writer) { encodeEntityID(t, q.topicID.entityID) })
	if q.startTime != nil {
		w.WriteMessage(2, func(ts *wire.Writer) {
			ts.WriteVarintI64(wire.TagTimeSeconds, q.startTime.Seconds)
			ts.WriteVarintI64(wire.TagTimeNanos, int64(q.startTime.Nanos))
		})
	}
	if q.endTime != nil {
		w.WriteMessage(3, func(ts *wire.Writer) {
			ts.WriteVarintI64(wire.TagTimeSeconds, q.endTime.Seconds)
			ts.WriteVarintI64(wire.TagTimeNanos, int64(q.endTime.Nanos))
		})
	}
	if q.limit > 0 {
		w.WriteVarintU64(4, q.limit)
	}
	return w.Bytes()
}

// Subscribe opens the mirror-plane stream and invokes onMessage for
// each delivered message, in consensus order, until the stream ends,
// ctx is cancelled, or onMessage returns an error (which is returned to
// the caller and stops the subscription). If ctx is cancelled, a nil
// error is returned rather than the context's error, matching the
// conventional "subscription stopped because the caller asked" case.
func (q *TopicMessageQuery) Subscribe(ctx context.Context, client *Client, onMessage func(TopicMessage) error) error {
	if err := client.checkNotClosed(); err != nil {
		return err
	}
	conn, err := client.mirrorChannel()
	if err != nil {
		return err
	}

	desc := &grpc.StreamDesc{StreamName: "subscribeTopic", ServerStreams: true}
	stream, err := conn.NewStream(ctx, desc, "/ledger.mirror.ConsensusService/subscribeTopic", grpc.CallContentSubtype(wire.RawCodecName))
	if err != nil {
		return newErr(ErrTransient, "failed to open topic subscription stream", err)
	}

	request := q.encodeRequest()
	if err := stream.SendMsg(&request); err != nil {
		return newErr(ErrTransient, "failed to send topic subscription request", err)
	}
	if err := stream.CloseSend(); err != nil {
		return newErr(ErrTransient, "failed to close topic subscription send side", err)
	}

	var delivered uint64
	for {
		var resp []byte
		err := stream.RecvMsg(&resp)
		if err == io.EOF {
			return nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return newErr(ErrTransient, "topic subscription stream failed", err)
		}
		msg, err := decodeTopicMessage(resp)
		if err != nil {
			return err
		}
		if err := onMessage(msg); err != nil {
			return err
		}
		delivered++
		if q.limit > 0 && delivered >= q.limit {
			return nil
		}
	}
}

func decodeTopicMessage(data []byte) (TopicMessage, error) {
	r := wire.NewReader(data)
	var out TopicMessage
	for r.Len() > 0 {
		field, wt, err := r.ReadTag()
		if err != nil {
			return TopicMessage{}, newErr(ErrParse, "malformed topic message", err)
		}
		switch field {
		case 1:
			sub, err := r.ReadMessage()
			if err != nil {
				return TopicMessage{}, newErr(ErrParse, "malformed topic message consensus timestamp", err)
			}
			if _, _, err := sub.ReadTag(); err != nil {
				return TopicMessage{}, newErr(ErrParse, "malformed topic message consensus timestamp", err)
			}
			seconds, _ := sub.ReadVarintI64()
			var nanos int64
			if sub.Len() > 0 {
				if _, _, err := sub.ReadTag(); err == nil {
					nanos, _ = sub.ReadVarintI64()
				}
			}
			out.ConsensusTimestamp = Timestamp{Seconds: seconds, Nanos: int32(nanos)}
		case 2:
			b, err := r.ReadBytes()
			if err != nil {
				return TopicMessage{}, newErr(ErrParse, "malformed topic message contents", err)
			}
			out.Contents = append([]byte(nil), b...)
		case 3:
			b, err := r.ReadBytes()
			if err != nil {
				return TopicMessage{}, newErr(ErrParse, "malformed topic message running hash", err)
			}
			out.RunningHash = append([]byte(nil), b...)
		case 4:
			v, err := r.ReadVarint()
			if err != nil {
				return TopicMessage{}, newErr(ErrParse, "malformed topic message sequence number", err)
			}
			out.SequenceNumber = v
		case 5:
			v, err := r.ReadVarint()
			if err != nil {
				return TopicMessage{}, newErr(ErrParse, "malformed topic message chunk total", err)
			}
			out.ChunkTotal = int(v)
		case 6:
			v, err := r.ReadVarint()
			if err != nil {
				return TopicMessage{}, newErr(ErrParse, "malformed topic message chunk number", err)
			}
			out.ChunkNumber = int(v)
		default:
			if err := r.SkipField(wt); err != nil {
				return TopicMessage{}, newErr(ErrParse, "malformed topic message", err)
			}
		}
	}
	return out, nil
}
