// Copyright 2026 The Seqlab Authors
// SPDX-License-Identifier: Apache-2.0

package preset

// builtins is the compiled-in experiment series. Each basename encodes
// the hyperparameters of the run (units, vocabulary size, sentence
// length, dropout) so checkpoint files on disk are self-describing.
// Token order is load-bearing: two launches of the same preset must
// hand the delegate byte-identical argument lists.
var builtins = []Preset{
	{
		Name:    "TEST_1",
		Summary: "babi baseline, 256 units, 5k vocabulary",
		Args: []string{
			"--mode=long",
			"--basename=test_s2s_babi_d256_v5000",
			"--load-babi",
			"--lr=0.001",
			"--units=256",
			"--record-loss",
			"--length=10",
		},
		Source: SourceBuiltin,
	},
	{
		Name:    "TEST_2",
		Summary: "babi with 15k vocabulary and unk filtering",
		Args: []string{
			"--mode=long",
			"--basename=test_s2s_babi_d256_v15000_length15",
			"--load-babi",
			"--lr=0.001",
			"--units=256",
			"--record-loss",
			"--length=15",
			"--skip-unk",
			"--hide-unk",
		},
		Source: SourceBuiltin,
	},
	{
		Name:    "TEST_3",
		Summary: "attention model, 300 units, recurrent weights reloaded",
		Args: []string{
			"--mode=long",
			"--basename=test_s2s_new_attn_d300_v15000_length15",
			"--load-babi",
			"--lr=0.001",
			"--load-recurrent",
			"--units=300",
			"--record-loss",
			"--multiplier=0.5",
			"--length=15",
			"--skip-unk",
			"--hide-unk",
		},
		Source: SourceBuiltin,
	},
	{
		Name:    "TEST_4",
		Summary: "attention model with 0.25 dropout",
		Args: []string{
			"--mode=long",
			"--basename=test_s2s_new_attn_d300_v15000_length15_dropout025",
			"--load-babi",
			"--lr=0.001",
			"--dropout=0.25",
			"--load-recurrent",
			"--units=300",
			"--record-loss",
			"--multiplier=0.5",
			"--length=15",
			"--skip-unk",
			"--hide-unk",
		},
		Source: SourceBuiltin,
	},
	{
		Name:    "TEST_5",
		Summary: "attention model with 0.5 dropout",
		Args: []string{
			"--mode=long",
			"--basename=test_s2s_new_attn_d300_v15000_length15_dropout050",
			"--load-babi",
			"--lr=0.001",
			"--dropout=0.5",
			"--load-recurrent",
			"--units=300",
			"--record-loss",
			"--multiplier=0.5",
			"--length=15",
			"--skip-unk",
			"--hide-unk",
		},
		Source: SourceBuiltin,
	},
}
