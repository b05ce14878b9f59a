// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package provider

import (
	"context"
	"log/slog"
	"time"

	"github.com/blinklabs-io/gocardano/ledger/common"
)

const defaultComponent = "provider"

// LoggingOptionFunc is a type that represents functions that modify the logging decorator config
type LoggingOptionFunc func(*LoggingProvider)

// WithLogger specifies the logger to use. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) LoggingOptionFunc {
	return func(p *LoggingProvider) {
		p.logger = logger
	}
}

// WithComponent overrides the component attribute of log records
func WithComponent(component string) LoggingOptionFunc {
	return func(p *LoggingProvider) {
		p.component = component
	}
}

// LoggingProvider wraps a Provider and logs every call
type LoggingProvider struct {
	provider  Provider
	logger    *slog.Logger
	component string
}

// WithLogging returns p wrapped in a LoggingProvider
func WithLogging(p Provider, opts ...LoggingOptionFunc) *LoggingProvider {
	ret := &LoggingProvider{
		provider:  p,
		component: defaultComponent,
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = slog.Default()
	}
	ret.logger = ret.logger.With(
		"component", ret.component,
		"provider", p.Name(),
		"network", NetworkByNetworkMagic(p.NetworkMagic()).String(),
	)
	return ret
}

// Unwrap returns the wrapped Provider
func (p *LoggingProvider) Unwrap() Provider {
	return p.provider
}

func (p *LoggingProvider) Name() string {
	return p.provider.Name()
}

func (p *LoggingProvider) NetworkMagic() uint32 {
	return p.provider.NetworkMagic()
}

func (p *LoggingProvider) log(ctx context.Context, op string, start time.Time, err error, args ...any) {
	args = append(args, "op", op, "duration", time.Since(start))
	if err != nil {
		p.logger.WarnContext(ctx, "provider call failed", append(args, "error", err)...)
		return
	}
	p.logger.DebugContext(ctx, "provider call", args...)
}

func (p *LoggingProvider) SubmitTransaction(ctx context.Context, txCbor []byte) (common.TxHash, error) {
	start := time.Now()
	ret, err := p.provider.SubmitTransaction(ctx, txCbor)
	p.log(ctx, "submit_transaction", start, err, "bytes", len(txCbor), "tx_hash", ret.String())
	return ret, err
}

func (p *LoggingProvider) EvaluateTransaction(ctx context.Context, txCbor []byte) (*common.RedeemerList, error) {
	start := time.Now()
	ret, err := p.provider.EvaluateTransaction(ctx, txCbor)
	args := []any{"bytes", len(txCbor)}
	if ret != nil {
		args = append(args, "redeemers", ret.Len())
	}
	p.log(ctx, "evaluate_transaction", start, err, args...)
	return ret, err
}

func (p *LoggingProvider) GetDatum(ctx context.Context, hash common.DatumHash) (*common.PlutusData, error) {
	start := time.Now()
	ret, err := p.provider.GetDatum(ctx, hash)
	p.log(ctx, "get_datum", start, err, "datum_hash", hash.String())
	return ret, err
}
