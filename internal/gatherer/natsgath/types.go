package natsgath

import (
	"github.com/nats-io/nats.go"
	"github.com/programme-lv/grader/api"
	"github.com/programme-lv/grader/internal/gatherer"
	"github.com/programme-lv/grader/internal/scoring"
)

const (
	MsgTypeStartedScoring   = "started_scoring"
	MsgTypeFinishedTestCase = "finished_test_case"
	MsgTypeFinishedScoring  = "finished_scoring"
)

type Header struct {
	GroupUuid string `json:"group_uuid"`
	MsgType   string `json:"msg_type"`
}

type StartedScoring struct {
	Header
	TestCount int `json:"test_count"`
}

type FinishedTestCase struct {
	Header
	api.TestPoints
}

type FinishedScoring struct {
	Header
	Report api.ScoreReport `json:"report"`
}

type natsGatherer struct {
	nc        *nats.Conn
	inbox     string
	groupUuid string
}

func (s *natsGatherer) StartScoring(groupID string, testCount int) {
	s.send(StartedScoring{
		Header:    s.header(MsgTypeStartedScoring),
		TestCount: testCount,
	})
}

func (s *natsGatherer) FinishTestCase(score scoring.TestScore) {
	s.send(FinishedTestCase{
		Header: s.header(MsgTypeFinishedTestCase),
		TestPoints: api.TestPoints{
			TestID:    score.TestID,
			Category:  string(score.Category),
			PassCount: score.PassCount,
			Points:    score.Points,
		},
	})
}

func (s *natsGatherer) FinishScoring(report *scoring.ScoreReport) {
	s.send(FinishedScoring{
		Header: s.header(MsgTypeFinishedScoring),
		Report: gatherer.MapReport(report),
	})
}

func (s *natsGatherer) FinishWithError(groupID string, msg string) {
	s.send(FinishedScoring{
		Header: s.header(MsgTypeFinishedScoring),
		Report: api.ScoreReport{
			GroupUuid:    groupID,
			Status:       api.RecordError,
			ErrorMessage: &msg,
		},
	})
}

func (s *natsGatherer) header(msgType string) Header {
	return Header{GroupUuid: s.groupUuid, MsgType: msgType}
}
