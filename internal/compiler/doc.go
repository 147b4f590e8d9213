/*
Package compiler is the rule-language front end: it tokenizes delimited rule
strings into fields, resolves named-rule aliases across their two
provenances with the three-pass override protocol, extracts rule blocks
from free-form file text, and builds concrete rules against the mnemonic
registries.

The data flow is: raw file text -> ExtractBlocks -> named/add rule strings
-> Resolve (plus any externally supplied named rules) -> BuildRules ->
bound rules ready for the dispatch engine.
*/
package compiler
