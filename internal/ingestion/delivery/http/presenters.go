package http

import (
	"time"

	"dinner-scheduler/internal/ingestion"
)

type cronResp struct {
	Success      bool                    `json:"success"`
	Result       ingestion.ProcessOutput `json:"result"`
	CheckTime    time.Time               `json:"checkTime"`
	LookbackTime time.Time               `json:"lookbackTime"`
}

func newCronResp(o ingestion.ProcessOutput, checkTime, since time.Time) cronResp {
	return cronResp{
		Success:      o.Error == "",
		Result:       o,
		CheckTime:    checkTime,
		LookbackTime: since,
	}
}

type checkResp struct {
	Success       bool                    `json:"success"`
	LastCheckTime time.Time               `json:"lastCheckTime"`
	Since         time.Time               `json:"since"`
	Result        ingestion.ProcessOutput `json:"result"`
}

func newCheckResp(o ingestion.CheckpointOutput) checkResp {
	return checkResp{
		Success:       o.Result.Error == "",
		LastCheckTime: o.CheckedAt,
		Since:         o.Since,
		Result:        o.Result,
	}
}
