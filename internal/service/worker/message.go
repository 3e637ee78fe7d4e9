package worker

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/Ahmet872/Alarm-System/internal/entity"
	"github.com/Ahmet872/Alarm-System/internal/service/evaluator"
	"github.com/samber/lo"
)

func buildMessage(alarm entity.Alarm, res evaluator.Result) (subject, body string) {
	subject = fmt.Sprintf("Financial Alarm Triggered: %s", alarm.AssetSymbol)

	params, err := json.MarshalIndent(alarm.Params, "", "  ")
	if err != nil {
		params = []byte("{}")
	}

	var sb strings.Builder
	sb.WriteString("Financial Alarm Triggered!\n\n")
	sb.WriteString(fmt.Sprintf("Asset: %s\n", alarm.AssetSymbol))
	sb.WriteString(fmt.Sprintf("Type: %s\n", strings.ToUpper(string(alarm.AlarmType))))
	sb.WriteString(fmt.Sprintf("Current Price: %s\n", res.ObservedPrice.StringFixed(2)))
	sb.WriteString(fmt.Sprintf("Conditions: %s\n", params))
	// sorted so the same trigger always produces the same body
	keys := lo.Keys(res.Detail)
	sort.Strings(keys)
	for _, k := range keys {
		sb.WriteString(fmt.Sprintf("%s: %s\n", k, res.Detail[k]))
	}
	sb.WriteString(fmt.Sprintf("Time (UTC): %s\n\n", time.Now().UTC().Format("2006-01-02 15:04:05")))
	sb.WriteString("This is an automated message from your Financial Alarm System.")
	return subject, sb.String()
}
