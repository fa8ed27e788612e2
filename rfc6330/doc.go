// Copyright 2014 Google Inc. All rights reserved.
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

// Package rfc6330 wires the solver's external collaborators into a
// reference RaptorQ codec: systematic constants, the GF(256) constraint-
// matrix generator, a systematic Encoder/Decoder, and the packet/OTI wire
// framing. None of this is the hard part — that's internal/solver — but
// the solver needs something to generate A and D for it, and the round-trip
// tests need something to drive end to end.
//
// Deviations from RFC 6330, clearly called out:
//
//   - Constants derives (K', J, S, H, W, P1) formulaically rather than by
//     looking up the RFC's Appendix A 477-row table, which is reproduced
//     nowhere in this repository's reference material. J in particular is
//     set equal to K' as a placeholder for the real systematic index; S and
//     H are derived the way the table itself would have been built (the
//     smallest X, S, H satisfying the RFC's defining inequalities). This is
//     sufficient to build a structurally valid, invertible constraint
//     matrix for any given K, which is all the solver's contract requires,
//     but the exact byte values will not match another RFC 6330
//     implementation's wire output.
//   - rand, the pseudo-random function of RFC 6330 section 5.4.4.1, is
//     defined over two 256-entry tables (V0, V1) specified by the RFC. Those
//     tables are not reproduced in this repository's reference material
//     either, so this package builds its own 256-entry tables
//     deterministically at init time. deg, by contrast, uses the RFC's own
//     31-entry probability table verbatim (it was present in the reference
//     material), so the degree distribution itself is RFC-exact even though
//     the symbol indices deg is applied to are not.
//
// A production encoder that needs to interoperate with other RFC 6330
// implementations must replace Constants and rand with the RFC's exact
// table values before relying on this package's wire output.
package rfc6330
