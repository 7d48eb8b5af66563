// Package waveform records the ports of a core under test over time.
package waveform

import "github.com/sarchlab/cosim/cosim"

type signal struct {
	name  string
	width int
	value func(p *cosim.Ports) uint64
}

func boolValue(b bool) uint64 {
	if b {
		return 1
	}

	return 0
}

var portSignals = []signal{
	{"clk", 1, func(p *cosim.Ports) uint64 { return boolValue(p.Clk) }},
	{"rst_n", 1, func(p *cosim.Ports) uint64 { return boolValue(p.ResetN) }},
	{"mem_rdata", 32, func(p *cosim.Ports) uint64 { return uint64(p.MemRData) }},
	{"mem_resp", 1, func(p *cosim.Ports) uint64 { return boolValue(p.MemResp) }},
	{"mem_read", 1, func(p *cosim.Ports) uint64 { return boolValue(p.MemRead) }},
	{"mem_write", 1, func(p *cosim.Ports) uint64 { return boolValue(p.MemWrite) }},
	{"mem_addr", 32, func(p *cosim.Ports) uint64 { return uint64(p.MemAddr) }},
	{"mem_wdata", 32, func(p *cosim.Ports) uint64 { return uint64(p.MemWData) }},
	{"pc", 32, func(p *cosim.Ports) uint64 { return uint64(p.PC) }},
}
